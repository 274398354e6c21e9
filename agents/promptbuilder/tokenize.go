/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// segment is either literal text or a placeholder name.
type segment struct {
	text string
	name string
}

func (s segment) placeholder() bool { return s.name != "" }

// parseTemplate splits a template into literal and placeholder segments.
// Placeholders are written {{name}} with optional surrounding spaces.
func parseTemplate(template string) ([]segment, error) {
	var segs []segment
	for len(template) > 0 {
		start := strings.Index(template, "{{")
		if start == -1 {
			segs = append(segs, segment{text: template})
			break
		}
		if start > 0 {
			segs = append(segs, segment{text: template[:start]})
		}

		end := strings.Index(template[start:], "}}")
		if end == -1 {
			return nil, errors.New("unclosed binding: missing '}}'")
		}
		end += start + 2

		name := strings.TrimSpace(template[start+2 : end-2])
		if !isValidIdentifier(name) {
			return nil, fmt.Errorf("invalid binding identifier %q", name)
		}
		segs = append(segs, segment{name: name})
		template = template[end:]
	}
	return segs, nil
}

// render joins segments, resolving each placeholder through resolve.
func render(segs []segment, resolve func(name string) (string, error)) (string, error) {
	var sb strings.Builder
	for _, s := range segs {
		if !s.placeholder() {
			sb.WriteString(s.text)
			continue
		}
		v, err := resolve(s.name)
		if err != nil {
			return "", err
		}
		sb.WriteString(v)
	}
	return sb.String(), nil
}

// isValidIdentifier reports whether s starts with a letter and contains only
// letters, digits and underscores.
func isValidIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '_'):
		default:
			return false
		}
	}
	return s != ""
}
