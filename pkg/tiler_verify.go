package pkg

import (
	"github.com/golang/glog"

	"github.com/ecopia-map/pnts_tiler/internal/io"
	"github.com/ecopia-map/pnts_tiler/internal/tiler"
	"github.com/ecopia-map/pnts_tiler/internal/tileset"
	"github.com/ecopia-map/pnts_tiler/tools"
)

type TilerVerify struct{}

type VerifyReport struct {
	tileset.ValidationReport
	TotalPoints  int      `json:"totalPoints"`
	CorruptTiles []string `json:"corruptTiles,omitempty"`
}

func NewTilerVerify() *TilerVerify {
	return &TilerVerify{}
}

func (tilerVerify *TilerVerify) RunTiler(opts *tiler.TilerOptions) error {
	report := tilerVerify.Verify(opts.Output)
	tools.LogOutput(tools.FmtJSONString(report))
	return report.Err(opts.Output)
}

// Runs the resume validation on dir and decodes every tile the descriptor references
func (tilerVerify *TilerVerify) Verify(dir string) *VerifyReport {
	report := &VerifyReport{ValidationReport: tileset.ValidateExisting(dir)}
	if report.ExpectedLeafCount == 0 {
		return report
	}

	store := tools.NewOutputStore(dir)
	descriptor, err := tileset.Load(store)
	if err != nil {
		return report
	}
	consumer := io.NewStandardConsumer(store)
	for _, uri := range descriptor.ContentURIs() {
		tile, err := consumer.Load(uri)
		if err != nil {
			glog.Warningf("tile %s: %v", uri, err)
			report.CorruptTiles = append(report.CorruptTiles, uri)
			continue
		}
		report.TotalPoints += tile.PointsLength
	}
	if len(report.CorruptTiles) > 0 {
		report.Valid = false
		report.Reason = "some tiles cannot be decoded"
	}
	return report
}
