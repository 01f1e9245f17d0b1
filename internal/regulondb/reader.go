package regulondb

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// readTable loads one export table: tab-separated fields, one record per
// line, lines starting with '#' are comments. Field content is kept verbatim
// apart from the trailing line ending.
func readTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("regulondb: open table: %w", err)
	}
	defer f.Close()

	var rows [][]string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("regulondb: read table %s: %w", path, err)
	}
	return rows, nil
}
