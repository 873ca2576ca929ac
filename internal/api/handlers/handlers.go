package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/recipevault/engine/internal/api/types"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, types.StatusForError(err), types.APIResponse{Success: false, Error: types.FromAppError(err)})
}

func writeErrorStr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.APIResponse{Success: false, Error: &types.APIError{Code: "invalid", Message: msg}})
}

// parseIDList parses a comma separated id list ("1,2,3"). Blank segments
// are skipped; a malformed segment invalidates the whole parameter.
func parseIDList(raw string) ([]uint, bool) {
	if raw == "" {
		return nil, true
	}
	var out []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, false
		}
		out = append(out, uint(id))
	}
	return out, true
}

// parseBoolFlag accepts 1/0/true/false; anything else reads as false.
func parseBoolFlag(raw string) bool {
	b, err := strconv.ParseBool(raw)
	return err == nil && b
}
