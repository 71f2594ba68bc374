// Package export writes ranked businesses to CSV and XLSX files for
// handoff to outreach tooling.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/model"
)

// columns is the fixed output column order shared by CSV and XLSX.
var columns = []string{
	"name", "domain", "niche", "region",
	"friction_score", "band", "tier",
	"email", "contact_url", "phone",
}

func businessRow(b model.Business) []string {
	return []string{
		b.Name, b.Domain, b.Niche, b.Region,
		strconv.Itoa(b.FrictionScore), string(b.Band), string(b.Tier),
		b.Email, b.ContactURL, b.Phone,
	}
}

// WriteCSV writes businesses to w in ranked order with a header row.
func WriteCSV(w io.Writer, businesses []model.Business) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, b := range businesses {
		if err := cw.Write(businessRow(b)); err != nil {
			return eris.Wrapf(err, "export: write csv row %s", b.Name)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteCSVFile writes businesses to a CSV file at path.
func WriteCSVFile(path string, businesses []model.Business) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if err := WriteCSV(f, businesses); err != nil {
		f.Close()
		return err
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}
