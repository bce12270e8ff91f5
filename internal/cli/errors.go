package cli

import (
	"fmt"
	"strconv"
	"strings"
)

type badIDError struct {
	kind string
	raw  string
}

func (e badIDError) Error() string {
	return fmt.Sprintf("invalid %s id: %q", e.kind, e.raw)
}

func parseID(kind, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, badIDError{kind: kind, raw: raw}
	}
	return id, nil
}
