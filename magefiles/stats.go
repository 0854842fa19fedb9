//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/mesh-intelligence/schemaboard/internal/paths"
	"github.com/mesh-intelligence/schemaboard/internal/schema"
	"github.com/mesh-intelligence/schemaboard/internal/sqlite"
	"github.com/mesh-intelligence/schemaboard/internal/workflow"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

// Stats prints one JSON line describing the project: Go lines split into
// production and test code, the content types with a dedicated field table,
// and the records in the local data directory grouped by status and type.
// The data directory follows SCHEMABOARD_DATA_DIR, else ./.schemaboard-db;
// a missing directory reports no records.
func Stats() error {
	prod, test, err := goLines()
	if err != nil {
		return err
	}
	contentTypes := schema.DefaultRegistry().SchemaTypes()
	sort.Strings(contentTypes)

	record := map[string]any{
		"go_loc_prod":   prod,
		"go_loc_test":   test,
		"content_types": contentTypes,
	}
	store, err := storeStats()
	if err != nil {
		return err
	}
	for k, v := range store {
		record[k] = v
	}

	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	return nil
}

// goLines counts newline-terminated lines of Go files outside magefiles,
// vendor, the binary directory and hidden or underscore directories.
func goLines() (prod, test int, err error) {
	err = filepath.WalkDir(".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != "." && (name == "vendor" || name == "magefiles" || name == binaryDir ||
				strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".go") {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		n := bytes.Count(data, []byte("\n"))
		if strings.HasSuffix(name, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

func storeStats() (map[string]any, error) {
	dataDir, err := paths.ResolveDataDir("", "")
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		return map[string]any{"schemas": 0}, nil
	}

	backend := sqlite.NewBackend()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dataDir, SyncStrategy: types.SyncOnClose}
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attaching %s: %w", dataDir, err)
	}
	defer backend.Detach()

	svc, err := workflow.New(backend, nil, nil)
	if err != nil {
		return nil, err
	}
	recs, err := svc.List(nil)
	if err != nil {
		return nil, err
	}
	byStatus := map[string]int{}
	byType := map[string]int{}
	for _, rec := range recs {
		byStatus[string(rec.Status)]++
		byType[rec.SchemaType]++
	}
	return map[string]any{
		"schemas":           len(recs),
		"schemas_by_status": byStatus,
		"schemas_by_type":   byType,
	}, nil
}
