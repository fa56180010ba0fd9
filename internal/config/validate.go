package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything a UI
// should surface before saving.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Search.Modalities = trimList(out.Search.Modalities)
	out.Search.Keywords = trimList(out.Search.Keywords)

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Search.RangeDays <= 0 {
		res.addErr("search.range_days must be > 0")
	} else if out.Search.RangeDays > 365 {
		res.addWarn("search.range_days is very large (%d); searches will be slow.", out.Search.RangeDays)
	}
	if len(out.Search.Modalities) == 0 {
		res.addWarn("search.modalities is empty; the built-in modality codes will be used.")
	}

	if out.PNCP.MaxPages < 0 || out.PNCP.MaxItems < 0 {
		res.addErr("pncp.max_pages and pncp.max_items must be >= 0")
	}
	if out.PNCP.PageSize < 0 || out.PNCP.PageSize > 500 {
		res.addErr("pncp.page_size must be 0..500 (consulta rejects larger values)")
	}
	if out.PNCP.RatePerSec > 10 {
		res.addWarn("pncp.rate_per_sec is high (%.1f) and may get the engine throttled.", out.PNCP.RatePerSec)
	}
	if out.PNCP.TimeoutSeconds > 0 && out.PNCP.TimeoutSeconds < 5 {
		res.addWarn("pncp.timeout_seconds is very low (%d); consulta can be slow on large pages.", out.PNCP.TimeoutSeconds)
	}

	if out.Snapshot.Enabled {
		if strings.TrimSpace(out.Snapshot.OutPath) == "" {
			res.addErr("snapshot.out_path is required when snapshot.enabled=true")
		}
		if out.Snapshot.RefreshMinutes <= 0 {
			res.addErr("snapshot.refresh_minutes must be > 0 when snapshot.enabled=true")
		}
		if out.Snapshot.Workers > 4 {
			res.addWarn("snapshot.workers is %d; keep the pool small or the source will rate-limit the grid.", out.Snapshot.Workers)
		}
	}

	return out, res
}
