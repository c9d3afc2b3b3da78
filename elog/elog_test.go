// Copyright (C) 2024 Ellis Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package elog

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func newTestStd() (*Std, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Std{Logger: log.New(&buf, "", 0)}, &buf
}

func TestInfofWritesMessage(t *testing.T) {
	s, buf := newTestStd()
	s.Infof("loaded %d records", 3)
	if got := buf.String(); !strings.Contains(got, "INFO loaded 3 records") {
		t.Fatalf("got %q", got)
	}
}

func TestWarnfAndErrorfPrefix(t *testing.T) {
	s, buf := newTestStd()
	s.Warnf("retrying %s", "decode")
	s.Errorf("gave up: %v", "boom")
	got := buf.String()
	if !strings.Contains(got, "WARN retrying decode") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "ERROR gave up: boom") {
		t.Fatalf("got %q", got)
	}
}

func TestDebugfSuppressedByDefault(t *testing.T) {
	s, buf := newTestStd()
	s.Debugf("this should not appear")
	if buf.Len() != 0 {
		t.Fatalf("got %q, want empty (Debug defaults to false)", buf.String())
	}
}

func TestDebugfEmitsWhenEnabled(t *testing.T) {
	s, buf := newTestStd()
	s.Debug = true
	s.Debugf("visible now")
	if !strings.Contains(buf.String(), "DEBUG visible now") {
		t.Fatalf("got %q", buf.String())
	}
}

var _ Logger = (*Std)(nil)
