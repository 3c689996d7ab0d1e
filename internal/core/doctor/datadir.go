package doctor

import (
	"context"
	"os"
	"path/filepath"
)

// DataDirCheck verifies the data directory exists, is writable, and
// holds a database file.
type DataDirCheck struct {
	dataDir string
}

// NewDataDirCheck creates a new data directory check.
func NewDataDirCheck(dataDir string) *DataDirCheck {
	return &DataDirCheck{dataDir: dataDir}
}

func (c *DataDirCheck) Name() string {
	return "Data Directory"
}

func (c *DataDirCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	info, err := os.Stat(c.dataDir)
	switch {
	case err != nil:
		result.Items = append(result.Items, CheckItem{
			Label:   "directory",
			Status:  StatusFail,
			Detail:  c.dataDir + " does not exist",
			Fixable: true,
		})
		return result
	case !info.IsDir():
		result.Items = append(result.Items, CheckItem{
			Label:  "directory",
			Status: StatusFail,
			Detail: c.dataDir + " is not a directory",
		})
		return result
	default:
		result.Items = append(result.Items, CheckItem{
			Label:  "directory",
			Status: StatusPass,
			Detail: c.dataDir,
		})
	}

	marker := filepath.Join(c.dataDir, ".doctor-write-check")
	if f, err := os.Create(marker); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "writable",
			Status: StatusFail,
			Detail: err.Error(),
		})
	} else {
		_ = f.Close()
		_ = os.Remove(marker)
		result.Items = append(result.Items, CheckItem{
			Label:  "writable",
			Status: StatusPass,
		})
	}

	dbPath := filepath.Join(c.dataDir, "sitecmd.db")
	if _, err := os.Stat(dbPath); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "database file",
			Status: StatusWarn,
			Detail: dbPath + " not found (created on first write)",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "database file",
			Status: StatusPass,
			Detail: dbPath,
		})
	}

	return result
}

// Fix creates the data directory when it is missing.
func (c *DataDirCheck) Fix(_ context.Context) error {
	return os.MkdirAll(c.dataDir, 0o755)
}
