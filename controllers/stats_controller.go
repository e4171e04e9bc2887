package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"foodnav/pkg/navtoken"
	"foodnav/pkg/resp"
	"foodnav/services"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{Stats: stats}
}

// GET /stats → period chooser view
func (ctl *StatsController) Chooser(c *gin.Context) {
	resp.OK(c, ctl.Stats.ChooserView())
}

// GET /stats/export?externalId=&period= → CSV attachment, consumed by
// the document side of the transport adapter.
func (ctl *StatsController) ExportCSV(c *gin.Context) {
	externalID, err := strconv.ParseInt(c.Query("externalId"), 10, 64)
	if err != nil || externalID == 0 {
		resp.BadRequest(c, "externalId is required")
		return
	}
	period := c.Query("period")
	switch period {
	case navtoken.PeriodWeek, navtoken.PeriodMonth, navtoken.PeriodAll:
	default:
		resp.BadRequest(c, "unknown period")
		return
	}

	rows, err := ctl.Stats.ExportRows(
		services.Identity{ExternalID: externalID},
		navtoken.WindowDays(period),
	)
	if err == services.ErrNoOrders {
		resp.NotFound(c, "no data for this period")
		return
	}
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="stats_%s.csv"`, period))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"date", "restaurant", "category", "item", "price", "calories", "proteins", "fats", "carbohydrates"})
	for _, row := range rows {
		_ = w.Write([]string{
			row.Date,
			row.Restaurant,
			row.Category,
			row.Item,
			strconv.FormatFloat(row.Price, 'f', -1, 64),
			strconv.FormatFloat(row.Calories, 'f', -1, 64),
			strconv.FormatFloat(row.Proteins, 'f', -1, 64),
			strconv.FormatFloat(row.Fats, 'f', -1, 64),
			strconv.FormatFloat(row.Carbohydrates, 'f', -1, 64),
		})
	}
	w.Flush()
}
