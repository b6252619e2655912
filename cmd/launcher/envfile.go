package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

type envPair struct {
	Key   string
	Value string
}

// parseEnvFile reads KEY=VALUE lines in file order. Blank lines, lines
// starting with '#' and lines without '=' are skipped. Only the first '='
// splits, so values may contain more of them. Quotes are kept verbatim.
func parseEnvFile(r io.Reader) ([]envPair, error) {
	var pairs []envPair
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		pairs = append(pairs, envPair{Key: key, Value: strings.TrimSpace(value)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}

func readEnvFile(path string) ([]envPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	pairs, err := parseEnvFile(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return pairs, nil
}

// environ is the variable set handed to every child process.
type environ map[string]string

// newEnviron copies base, given in os.Environ form.
func newEnviron(base []string) environ {
	e := make(environ, len(base))
	for _, kv := range base {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		e[key] = value
	}
	return e
}

// Apply sets pairs in order; later pairs and pairs over inherited keys win.
func (e environ) Apply(pairs []envPair) {
	for _, p := range pairs {
		e[p.Key] = p.Value
	}
}

func (e environ) Get(key, fallback string) string {
	if v, ok := e[key]; ok {
		return v
	}
	return fallback
}

// List returns KEY=VALUE entries sorted by key.
func (e environ) List() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]string, 0, len(keys))
	for _, k := range keys {
		list = append(list, k+"="+e[k])
	}
	return list
}
