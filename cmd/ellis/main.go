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

// Command ellis converts a data file from one registered format to
// another, selecting codecs by file extension.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ellisdata/ellis/ellisfacade"
	"github.com/ellisdata/ellis/ellisjson"
	"github.com/ellisdata/ellis/ellismsgpack"
	_ "github.com/ellisdata/ellis/ellistext"
	"github.com/ellisdata/ellis/elog"
	"github.com/ellisdata/ellis/registry"
	"github.com/ellisdata/ellis/stream"
)

var (
	dashv bool
	dasho string
)

func init() {
	flag.BoolVar(&dashv, "v", false, "verbose")
	flag.StringVar(&dasho, "o", "-", "output file (or - for stdout)")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func extOf(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage:\n")
		fmt.Fprintf(os.Stderr, "    %s [-o <output>] <input-file>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        convert <input-file> to the format implied by -o's extension\n")
		fmt.Fprintf(os.Stderr, "flag usage:\n")
		flag.Usage()
		os.Exit(1)
	}

	log := elog.NewStd()
	log.Debug = dashv

	// ellistext self-registers at its package init; wire the other
	// two builtin codecs in alongside it.
	ellisjson.Register(registry.Default)
	ellismsgpack.Register(registry.Default)

	inPath := args[0]
	data, err := os.ReadFile(inPath)
	if err != nil {
		exitf("reading %s: %s", inPath, err)
	}
	inExt := extOf(inPath)
	if inExt == "" {
		exitf("%s has no extension to select a codec by", inPath)
	}

	in := stream.NewByteSliceInput(data)
	v, err := ellisfacade.LoadAuto(in, registry.Default, inExt)
	if err != nil {
		exitf("decoding %s: %s", inPath, err)
	}
	log.Infof("decoded %s (%s)", inPath, inExt)

	outExt := extOf(dasho)
	if dasho == "-" || outExt == "" {
		outExt = inExt
	}

	out := stream.NewByteSliceOutput()
	if err := ellisfacade.DumpAuto(out, registry.Default, outExt, v); err != nil {
		exitf("encoding: %s", err)
	}

	if dasho == "-" {
		os.Stdout.Write(out.Bytes())
		return
	}
	if err := os.WriteFile(dasho, out.Bytes(), 0644); err != nil {
		exitf("writing %s: %s", dasho, err)
	}
	log.Infof("wrote %s (%s)", dasho, outExt)
}
