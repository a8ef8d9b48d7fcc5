package services

const (
	// mortarDryVolumeFactor converts wet mortar volume to dry material volume.
	mortarDryVolumeFactor = 1.42
	// concreteDryVolumeFactor converts wet concrete volume to dry material volume.
	concreteDryVolumeFactor = 1.54
	// cementBagVolume is the volume of one 50 kg cement bag in m³.
	cementBagVolume = 0.035
)

func brickVolumeFormula(in Values) Values {
	return brickTakeOff(in, in["wallVolume"])
}

func brickWallFormula(in Values) Values {
	wallVolume := in["wallLength"] * in["wallHeight"] * in["wallThickness"]
	out := brickTakeOff(in, wallVolume)
	out["wallVolume"] = wallVolume
	return out
}

// brickTakeOff sizes bricks, mortar and costs for a wall of the given volume.
// The joint is added to brick length and thickness only.
func brickTakeOff(in Values, wallVolume float64) Values {
	l, w, t, j := in["brickLength"], in["brickWidth"], in["brickThickness"], in["joint"]

	unitVolume := (l + j) * w * (t + j)
	bricks := SafeDiv(wallVolume, unitVolume)
	wetMortar := wallVolume - bricks*l*w*t
	dryMortar := wetMortar * mortarDryVolumeFactor

	cementRatio, sandRatio := in["cementRatio"], in["sandRatio"]
	ratioSum := cementRatio + sandRatio
	cementVolume := SafeDiv(dryMortar*cementRatio, ratioSum)
	cementBags := SafeDiv(cementVolume, cementBagVolume)
	sandVolume := SafeDiv(dryMortar*sandRatio, ratioSum)

	costs, total := AggregateCosts(
		CostLine{Quantity: bricks, UnitPrice: in["brickPrice"]},
		CostLine{Quantity: cementBags, UnitPrice: in["cementPrice"]},
		CostLine{Quantity: sandVolume, UnitPrice: in["sandPrice"]},
	)

	return Values{
		"unitVolume":      unitVolume,
		"noOfBricks":      bricks,
		"mortarWetVolume": wetMortar,
		"mortarDryVolume": dryMortar,
		"cementVolume":    cementVolume,
		"cementBags":      cementBags,
		"sandVolume":      sandVolume,
		"brickCost":       costs[0],
		"cementCost":      costs[1],
		"sandCost":        costs[2],
		"totalCost":       total,
	}
}

func concreteFormula(in Values) Values {
	wet := in["length"] * in["width"] * in["depth"]
	dry := wet * concreteDryVolumeFactor

	c, s, a := in["cementRatio"], in["sandRatio"], in["aggregateRatio"]
	sum := c + s + a
	cementVolume := SafeDiv(dry*c, sum)
	sandVolume := SafeDiv(dry*s, sum)
	aggregateVolume := SafeDiv(dry*a, sum)
	cementBags := SafeDiv(cementVolume, cementBagVolume)

	costs, total := AggregateCosts(
		CostLine{Quantity: cementBags, UnitPrice: in["cementPrice"]},
		CostLine{Quantity: sandVolume, UnitPrice: in["sandPrice"]},
		CostLine{Quantity: aggregateVolume, UnitPrice: in["aggregatePrice"]},
	)

	return Values{
		"wetVolume":       wet,
		"dryVolume":       dry,
		"cementVolume":    cementVolume,
		"cementBags":      cementBags,
		"sandVolume":      sandVolume,
		"aggregateVolume": aggregateVolume,
		"cementCost":      costs[0],
		"sandCost":        costs[1],
		"aggregateCost":   costs[2],
		"totalCost":       total,
	}
}
