// Go to a pdb website and download coordinates.
// The main point is to visit the web page and hand the body to the same
// readers as are used for files.

package pdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andrew-torda/sw3d/pdb/cmmn"
	"github.com/andrew-torda/sw3d/pdb/zwrap"
)

// ErrDownload is wrapped by everything that goes wrong talking to a server.
var ErrDownload = errors.New("pdb: download failed")

// Site is where we fetch a structure from. The URL is Base + code + Suffix.
// The suffix also tells us the format (.cif or .pdb). Whether or not the
// server compresses the data is found by looking at it.
type Site struct {
	Base   string
	Suffix string
}

// Sites are the three protein data bank sites.
var Sites = []Site{
	{"https://files.rcsb.org/download/", ".cif.gz"},
	{"https://www.ebi.ac.uk/pdbe/entry-files/download/", ".cif"},
	{"https://ftp.pdbj.org/mmcif/", ".cif.gz"},
}

// SiteNum returns one of the Sites. If you give a value that is too big,
// we use a modulo to wrap it around, rather than generate an error. This
// makes it easier to cycle through them or pick one at random.
func SiteNum(i int) Site {
	if i < 0 {
		i = -i
	}
	return Sites[i%len(Sites)]
}

// getHTTP goes to a site and returns a reader for the, possibly
// decompressed, body.
func getHTTP(ctx context.Context, client *http.Client, site Site, acqCode string) (io.ReadCloser, error) {
	if len(acqCode) != 4 {
		return nil, fmt.Errorf("%w: acq code should be four char, not %q", ErrDownload, acqCode)
	}
	url := site.Base + strings.ToLower(acqCode) + site.Suffix
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: wanted %s using %s, got %s", ErrDownload, acqCode, url, resp.Status)
	}
	rdr, err := zwrap.WrapMaybe(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrDownload, url, err)
	}
	return rdr, nil
}

// Fetch downloads a structure by its four letter code and returns the
// chains of the first model. A nil client means http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, site Site, acqCode string) (cmmn.ChnSl, error) {
	rdr, err := getHTTP(ctx, client, site, acqCode)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDownload, acqCode, err)
	}
	return readChains(acqCode+site.Suffix, data)
}

// FetchCA is like ReadCA, but the structure comes from a server.
func FetchCA(ctx context.Context, client *http.Client, site Site, acqCode, chain string) ([]cmmn.CaAtom, error) {
	chains, err := Fetch(ctx, client, site, acqCode)
	if err != nil {
		return nil, err
	}
	return pickChain(acqCode, chains, chain)
}
