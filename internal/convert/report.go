package convert

import (
	"encoding/json"
	"os"
)

// WriteReport writes the session summary as indented JSON.
func WriteReport(path string, res Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
