// 19 Oct 2026
// Read two structures, align the sequences and superimpose.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/andrew-torda/sw3d/gotoh"
	"github.com/andrew-torda/sw3d/pdb"
	"github.com/andrew-torda/sw3d/pdb/calpha/geom"
	"github.com/andrew-torda/sw3d/pdb/cmmn"
	"github.com/andrew-torda/sw3d/submat"
	"github.com/andrew-torda/sw3d/sw3d"
	"golang.org/x/sync/errgroup"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

const fetchTimeout = 2 * time.Minute

type cmdArgs struct {
	open, ext      float64
	matFile        string
	chain1, chain2 string
	json           bool
	logWhere       string
	fetch          bool
	site           int
	names          [2]string
}

// jsonResult adds the strings that Result does not carry in json.
type jsonResult struct {
	*sw3d.Result
	Query   string `json:"query"`
	Target  string `json:"target"`
	Symbols string `json:"symbols"`
}

func main() {
	os.Exit(mymain(os.Args[1:], os.Stdout, os.Stderr))
}

// parseArgs fills out cmdArgs from the command line.
func parseArgs(args []string, stderr io.Writer) (cmdArgs, error) {
	var a cmdArgs
	f := flag.NewFlagSet("sw3d", flag.ContinueOnError)
	f.SetOutput(stderr)
	f.Float64Var(&a.open, "o", sw3d.DefaultOpen, "gap opening penalty")
	f.Float64Var(&a.ext, "e", sw3d.DefaultExt, "gap extension penalty")
	f.StringVar(&a.matFile, "m", "", "substitution matrix file (default BLOSUM62)")
	f.StringVar(&a.chain1, "c1", "", "chain in first structure")
	f.StringVar(&a.chain2, "c2", "", "chain in second structure")
	f.BoolVar(&a.json, "json", false, "write json")
	f.StringVar(&a.logWhere, "l", "", "where to log: stdout, stderr or a file name")
	f.BoolVar(&a.fetch, "fetch", false, "arguments are PDB codes to download")
	f.IntVar(&a.site, "site", 0, "PDB site to download from")
	f.Usage = func() {
		fmt.Fprintln(f.Output(), "usage: sw3d [flags] file1 file2")
		f.PrintDefaults()
	}
	if err := f.Parse(args); err != nil {
		return a, err
	}
	if f.NArg() != 2 {
		f.Usage()
		return a, fmt.Errorf("wanted two structures, got %d", f.NArg())
	}
	a.names[0], a.names[1] = f.Arg(0), f.Arg(1)
	return a, nil
}

// getCA reads or downloads one chain.
func getCA(ctx context.Context, a *cmdArgs, name, chain string) ([]cmmn.CaAtom, error) {
	if a.fetch {
		client := &http.Client{Timeout: fetchTimeout}
		return pdb.FetchCA(ctx, client, pdb.SiteNum(a.site), name, chain)
	}
	return pdb.ReadCA(name, chain)
}

// readBoth gets the two chains at the same time.
func readBoth(ctx context.Context, a *cmdArgs) (ca [2][]cmmn.CaAtom, err error) {
	chains := [2]string{a.chain1, a.chain2}
	g, ctx := errgroup.WithContext(ctx)
	for i := range ca {
		i := i
		g.Go(func() error {
			var err error
			ca[i], err = getCA(ctx, a, a.names[i], chains[i])
			return err
		})
	}
	err = g.Wait()
	return ca, err
}

// logBreaks notes where a chain is broken. The alignment does not know
// about geometry, so a break only gets mentioned.
func logBreaks(lg *log.Logger, name string, atoms []cmmn.CaAtom) {
	for _, b := range geom.Breaks(atoms) {
		lg.Printf("%s: %v after residue %d%c (%.2f)", name, b.Err,
			atoms[b.After].ResNum, atoms[b.After].InsCode, b.Dist)
	}
}

func params(a *cmdArgs) (sw3d.Params, error) {
	p := sw3d.DefaultParams()
	p.Pnlty = gotoh.Pnlty{Open: float32(a.open), Ext: float32(a.ext)}
	if a.matFile != "" {
		var err error
		if p.Submat, err = submat.Read(a.matFile); err != nil {
			return p, err
		}
	}
	return p, p.Validate()
}

func writeResult(w io.Writer, r *sw3d.Result, asJSON bool) error {
	if !asJSON {
		_, err := io.WriteString(w, r.String())
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{
		Result:  r,
		Query:   r.Query(),
		Target:  r.Target(),
		Symbols: r.Symbols(),
	})
}

// mymain is main, but returns an exit code so it can be tested.
func mymain(args []string, stdout, stderr io.Writer) int {
	a, err := parseArgs(args, stderr)
	if err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintln(stderr, err)
		}
		return ExitUsageError
	}
	lg, err := pdb.LogWhere(a.logWhere)
	if err != nil {
		fmt.Fprintln(stderr, "opening log:", err)
		return ExitFailure
	}
	p, err := params(&a)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsageError
	}
	ca, err := readBoth(context.Background(), &a)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	for i := range ca {
		lg.Printf("%s: %d residues %s", a.names[i], len(ca[i]), cmmn.Seq(ca[i]))
		logBreaks(lg, a.names[i], ca[i])
	}
	r, err := sw3d.Align(ca[0], ca[1], p)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	if err := writeResult(stdout, r, a.json); err != nil {
		fmt.Fprintln(stderr, "writing result:", err)
		return ExitFailure
	}
	return ExitSuccess
}
