package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/prospect-cli/internal/model"
)

// WriteXLSX writes businesses to an XLSX workbook at path with a single
// "Ranked" sheet in the same column order as the CSV export.
func WriteXLSX(path string, businesses []model.Business) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Ranked")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().SetString(col)
	}

	for _, b := range businesses {
		row := sheet.AddRow()
		row.AddCell().SetString(b.Name)
		row.AddCell().SetString(b.Domain)
		row.AddCell().SetString(b.Niche)
		row.AddCell().SetString(b.Region)
		row.AddCell().SetInt(b.FrictionScore)
		row.AddCell().SetString(string(b.Band))
		row.AddCell().SetString(string(b.Tier))
		row.AddCell().SetString(b.Email)
		row.AddCell().SetString(b.ContactURL)
		row.AddCell().SetString(b.Phone)
	}

	return eris.Wrapf(f.Save(path), "export: save %s", path)
}
