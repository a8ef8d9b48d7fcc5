package services

import "math"

// Roof slopes are measured from the wall line; the eave overhang extends the
// slope and both gable ends.

func roofGableFormula(in Values) Values {
	eave := in["eave"]
	slant := math.Hypot(in["span"]/2, in["rise"]) + eave
	length := in["roofLength"] + 2*eave
	area := 2 * slant * length
	return roofSheets(in, slant, area)
}

func roofShedFormula(in Values) Values {
	eave := in["eave"]
	slant := math.Hypot(in["span"], in["rise"]) + eave
	length := in["roofLength"] + 2*eave
	area := slant * length
	return roofSheets(in, slant, area)
}

// roofHipFormula assumes equal pitch on all four faces, so the sloped area is
// the plan area scaled by the rafter-to-run ratio of the short side.
func roofHipFormula(in Values) Values {
	eave := in["eave"]
	halfSpan := in["span"] / 2
	rafter := math.Hypot(halfSpan, in["rise"])
	pitchFactor := SafeDiv(rafter, halfSpan)

	planLength := in["roofLength"] + 2*eave
	planWidth := in["span"] + 2*eave
	area := planLength * planWidth * pitchFactor

	out := roofSheets(in, rafter+eave, area)
	out["pitchFactor"] = pitchFactor
	return out
}

func roofSheets(in Values, slant, area float64) Values {
	sheets := ceilCount(SafeDiv(area, in["sheetCoverage"]))
	return Values{
		"slantLength": slant,
		"roofArea":    area,
		"sheets":      sheets,
		"totalCost":   sheets * in["sheetPrice"],
	}
}
