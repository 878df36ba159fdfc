package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"autowrap/config"
	"autowrap/host"
	"autowrap/lsp"
	"autowrap/plugin"
)

func main() {
	watch := flag.Bool("watch", false, "keep running and re-decide when files change on disk")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: autowrap [-watch] file ...")
		os.Exit(1)
	}

	sim := host.NewSim()
	p := plugin.Setup(sim, cfg)

	cwd, _ := os.Getwd()
	intel := lsp.NewManager(cwd)
	defer intel.Close()

	paths := make(map[string]host.BufferID, len(files))
	for _, path := range files {
		buf, err := openFile(sim, intel, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		paths[path] = buf.ID()

		sim.ShowBuffer(buf.ID())
		report(p, buf)
	}
	printNotices(sim)

	if !*watch && !cfg.RedecideOnChange {
		return
	}

	w, err := plugin.WatchFiles(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer w.Close()

	byID := make(map[host.BufferID]string, len(paths))
	for path, id := range paths {
		byID[id] = path
	}

	for id := range w.Changes() {
		buf, err := sim.Buffer(id)
		if err != nil {
			continue
		}
		reload(buf.(*host.SimBuffer), byID[id])
		if err := p.Engine().Decide(id); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		report(p, buf)
		printNotices(sim)
	}
}

func openFile(sim *host.Sim, intel *lsp.Manager, path string) (*host.SimBuffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	language := detectLanguage(path)
	buf := sim.NewBuffer(path, filetypeFor(path, language), splitLines(data))
	buf.SetLanguage(language)
	if caps, ok := intel.Capabilities(language); ok {
		buf.SetIntel([]host.IntelCapabilities{caps})
	}
	return buf, nil
}

func reload(buf *host.SimBuffer, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	buf.SetLines(splitLines(data))
}

func splitLines(data []byte) []string {
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func detectLanguage(path string) string {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}

// filetypeFor maps a file to the filetype name the softener and allow/deny
// lists use.
func filetypeFor(path, language string) string {
	if filepath.Base(path) == "COMMIT_EDITMSG" {
		return "gitcommit"
	}
	switch language {
	case "", "plaintext":
		return "text"
	case "TeX":
		return "tex"
	default:
		return strings.ToLower(language)
	}
}

func report(p *plugin.Plugin, buf host.Buffer) {
	mode := p.Machine().Current(buf.ID())
	stats, err := p.Engine().CommentStats(buf.ID())
	if err != nil {
		fmt.Printf("%s: %s\n", buf.Name(), mode)
		return
	}
	fmt.Printf("%s: %s (%d lines, %d comment lines)\n",
		buf.Name(), mode, buf.LineCount(), stats.Lines)
}

func printNotices(sim *host.Sim) {
	for _, n := range sim.Notices {
		fmt.Fprintf(os.Stderr, "%s: %s\n", n.Level, n.Message)
	}
	sim.Notices = sim.Notices[:0]
}
