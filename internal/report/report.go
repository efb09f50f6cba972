package report

import (
	"context"
	"sort"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
)

// CloseDateLayout 报表中关闭日期的格式
const CloseDateLayout = "2006-01-02 15:04"

// Headers 报表表头
var Headers = []string{
	"Название проекта",
	"Время сбора",
	"Описание",
	"Собрано средств",
	"Дата закрытия",
}

// Row 已关闭项目的报表行
type Row struct {
	ProjectId       int64         `json:"project_id"`
	Name            string        `json:"name"`
	CollectionTime  string        `json:"collection_time"`
	Description     string        `json:"description"`
	CollectedAmount int64         `json:"collected_amount"`
	CloseDate       string        `json:"close_date"`
	Duration        time.Duration `json:"duration"`
}

// Exporter 报表导出目标（例如 Google 表格），返回可访问的地址
type Exporter interface {
	Export(ctx context.Context, rows []Row) (string, error)
}

// BuildRows 按募集速度（耗时升序）排列已关闭项目，耗时相同按项目 ID。
// 没有关闭日期的项目被忽略。
func BuildRows(projects []model.CharityProjectModel) []Row {
	rows := make([]Row, 0, len(projects))
	for _, p := range projects {
		if !p.FullyInvested || p.CloseDate == nil {
			continue
		}
		d := p.CloseDate.Sub(p.CreateDate)
		rows = append(rows, Row{
			ProjectId:       p.Id,
			Name:            p.Name,
			CollectionTime:  FormatDuration(d),
			Description:     p.Description,
			CollectedAmount: p.InvestedAmount,
			CloseDate:       p.CloseDate.Format(CloseDateLayout),
			Duration:        d,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Duration != rows[j].Duration {
			return rows[i].Duration < rows[j].Duration
		}
		return rows[i].ProjectId < rows[j].ProjectId
	})
	return rows
}
