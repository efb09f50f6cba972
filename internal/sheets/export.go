package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/Frenky19/QRkot-spreadsheets/internal/report"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

const headerGrey = 0.9

// Export 清空第一个工作表并写入报表，返回表格地址
func (c *Client) Export(ctx context.Context, rows []report.Row) (string, error) {
	spreadsheet, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("spreadsheetUrl", "sheets.properties").
		Context(ctx).Do()
	if err != nil {
		return "", c.wrap(err)
	}
	if len(spreadsheet.Sheets) == 0 || spreadsheet.Sheets[0].Properties == nil {
		return "", fmt.Errorf("%w: spreadsheet has no sheets", errno.ErrExportFailed)
	}
	sheet := spreadsheet.Sheets[0].Properties
	title := fmt.Sprintf("'%s'", sheet.Title)

	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, title, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return "", c.wrap(err)
	}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, title+"!A1", &sheets.ValueRange{
		Values: buildValues(rows),
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return "", c.wrap(err)
	}

	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{headerFormat(sheet.SheetId)},
	}).Context(ctx).Do()
	if err != nil {
		return "", c.wrap(err)
	}

	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{autoResize(sheet.SheetId)},
	}).Context(ctx).Do()
	if err != nil {
		logger.Warn("Failed to auto resize report columns: %v", err)
	}

	logger.Info("Spreadsheet %s updated with %d projects", c.spreadsheetID, len(rows))
	return spreadsheet.SpreadsheetUrl, nil
}

func (c *Client) wrap(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		logger.Error("Spreadsheet %s not found", c.spreadsheetID)
		return errno.ErrSpreadsheetNotFound
	}
	logger.Error("Spreadsheet update failed: %v", err)
	return fmt.Errorf("%w: %v", errno.ErrExportFailed, err)
}

// buildValues 表头加每个项目一行
func buildValues(rows []report.Row) [][]interface{} {
	values := make([][]interface{}, 0, len(rows)+1)

	header := make([]interface{}, len(report.Headers))
	for i, h := range report.Headers {
		header[i] = h
	}
	values = append(values, header)

	for _, r := range rows {
		values = append(values, []interface{}{
			r.Name,
			r.CollectionTime,
			r.Description,
			r.CollectedAmount,
			r.CloseDate,
		})
	}
	return values
}

func headerFormat(sheetId int64) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				SheetId:          sheetId,
				StartRowIndex:    0,
				EndRowIndex:      1,
				StartColumnIndex: 0,
				EndColumnIndex:   int64(len(report.Headers)),
			},
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					TextFormat:      &sheets.TextFormat{Bold: true},
					BackgroundColor: &sheets.Color{Red: headerGrey, Green: headerGrey, Blue: headerGrey},
				},
			},
			Fields: "userEnteredFormat(textFormat,backgroundColor)",
		},
	}
}

func autoResize(sheetId int64) *sheets.Request {
	return &sheets.Request{
		AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
			Dimensions: &sheets.DimensionRange{
				SheetId:    sheetId,
				Dimension:  "COLUMNS",
				StartIndex: 0,
				EndIndex:   int64(len(report.Headers)),
			},
		},
	}
}
