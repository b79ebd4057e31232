package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed seed_names.txt
var FS embed.FS

// SeedNames returns the bundled "<id> <slug>" species lines. The list is the
// offline fallback for the name corpus when the upstream API is unreachable.
func SeedNames() ([]string, error) {
	f, err := FS.Open("seed_names.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}
