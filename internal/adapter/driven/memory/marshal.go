package memory

import (
	"encoding/json"
	"fmt"

	"github.com/tbrowse/themescan/internal/domain/model"
)

func marshalTree(items []model.TreeItem) (string, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal tree: %w", err)
	}
	return string(payload), nil
}
