package dbip

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"os"
	"sort"

	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
	"github.com/l3montree-dev/honeypot-dashboard/packages/utils"
)

type entry struct {
	start   netip.Addr
	end     netip.Addr
	country string
}

// Compare reports 0 if other (a single address range) lies inside e.
func (e entry) Compare(other entry) int {
	if e.start.Compare(other.start) <= 0 && e.end.Compare(other.start) >= 0 {
		return 0
	}
	return e.start.Compare(other.start)
}

type IpToCountry struct {
	dataset []entry
}

func (i *IpToCountry) Lookup(ip net.IP) string {
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return types.UnknownCountry
	}
	addr = addr.Unmap()
	index := utils.BinarySearch(i.dataset, entry{start: addr, end: addr})
	if index != -1 {
		return i.dataset[index].country
	}
	return types.UnknownCountry
}

func (i *IpToCountry) Len() int {
	return len(i.dataset)
}

// readCountryCSV reads "start,end,country" lines. Lines with invalid
// addresses are skipped.
func readCountryCSV(r io.Reader) ([]entry, error) {
	result := make([]entry, 0)
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	for {
		line, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(line) < 3 {
			continue
		}
		start, err := netip.ParseAddr(line[0])
		if err != nil {
			continue
		}
		end, err := netip.ParseAddr(line[1])
		if err != nil {
			continue
		}
		result = append(result, entry{
			start:   start.Unmap(),
			end:     end.Unmap(),
			country: line[2],
		})
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].start.Less(result[b].start)
	})
	return result, nil
}

func NewIpToCountry(path string) (*IpToCountry, error) {
	csvFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open dbip file: %w", err)
	}
	defer csvFile.Close()

	dataset, err := readCountryCSV(csvFile)
	if err != nil {
		return nil, fmt.Errorf("could not read dbip file: %w", err)
	}
	return &IpToCountry{
		dataset: dataset,
	}, nil
}
