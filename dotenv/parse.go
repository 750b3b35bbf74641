/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package dotenv

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// assignmentPattern matches "KEY=value". Keys never contain '#', '=' or
// whitespace; the value is the remainder of the line, kept verbatim.
var assignmentPattern = regexp.MustCompile(`^\s*([^#=\s]+)\s*=\s*(.*)$`)

// Entry is one assignment read from an override file.
type Entry struct {
	Key   string
	Value string
	Line  int
}

// Parse reads assignments from r. Blank lines, comments and lines without
// '=' are skipped. Values have at most one layer of matching quotes removed.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	reader := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			lineNo++
			if entry, ok := ParseLine(line); ok {
				entry.Line = lineNo
				entries = append(entries, entry)
			}
		}
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return entries, err
		}
	}
}

// ParseLine parses a single line, with or without its "\n" / "\r\n" terminator.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	m := assignmentPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	return Entry{Key: m[1], Value: Unquote(m[2])}, true
}

// Unquote strips exactly one matching pair of surrounding double or single
// quotes. A value quoted on only one side is returned unchanged.
func Unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	first, last := raw[0], raw[len(raw)-1]
	if first == last && (first == '"' || first == '\'') {
		return raw[1 : len(raw)-1]
	}
	return raw
}
