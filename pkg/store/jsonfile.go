package store

import (
	"encoding/json"
	"os"

	"github.com/everhype/monthclose/pkg/domain"
)

type JSONFile struct {
	filename string
}

func NewJSONFile(filename string) Store {
	return &JSONFile{filename: filename}
}

func (f *JSONFile) Write(txns []*domain.Transaction) error {
	data, err := json.Marshal(txns)
	if err != nil {
		return err
	}
	return os.WriteFile(f.filename, data, 0644)
}
