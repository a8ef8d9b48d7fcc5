package services

import "math"

// steelDensity is used when no density is entered for metal calculators.
const steelDensity = 7850.0

func excavationFormula(in Values) Values {
	volume := in["length"] * in["width"] * in["depth"]
	bulked := volume * (1 + in["swellPercent"]/100)
	trips := ceilCount(SafeDiv(bulked, in["truckCapacity"]))

	return Values{
		"volume":        volume,
		"bulkedVolume":  bulked,
		"trips":         trips,
		"haulageCost":   trips * in["pricePerTrip"],
		"excavatedMass": volume * in["soilDensity"],
	}
}

func flooringFormula(in Values) Values {
	floorArea := in["roomLength"] * in["roomWidth"]
	tileArea := in["tileLength"] * in["tileWidth"]
	tiles := ceilCount(SafeDiv(floorArea, tileArea) * (1 + in["wastagePercent"]/100))
	boxes := ceilCount(SafeDiv(tiles, in["tilesPerBox"]))

	return Values{
		"floorArea":   floorArea,
		"tileArea":    tileArea,
		"tilesNeeded": tiles,
		"boxes":       boxes,
		"totalCost":   boxes * in["pricePerBox"],
	}
}

func metalBarFormula(in Values) Values {
	d := in["diameter"]
	area := math.Pi * d * d / 4
	volume := area * in["length"] * in["quantity"]
	weight := volume * densityOrSteel(in["density"])

	return Values{
		"crossSection": area,
		"volume":       volume,
		"weight":       weight,
		"unitWeight":   SafeDiv(weight, in["length"]*in["quantity"]),
		"totalCost":    weight * in["pricePerKg"],
	}
}

func metalPlateFormula(in Values) Values {
	volume := in["length"] * in["width"] * in["thickness"] * in["quantity"]
	weight := volume * densityOrSteel(in["density"])

	return Values{
		"volume":    volume,
		"weight":    weight,
		"totalCost": weight * in["pricePerKg"],
	}
}

func densityOrSteel(density float64) float64 {
	if density > 0 {
		return density
	}
	return steelDensity
}

func swimmingPoolFormula(in Values) Values {
	l, w := in["length"], in["width"]
	avgDepth := (in["shallowDepth"] + in["deepDepth"]) / 2
	volume := l * w * avgDepth
	interior := l*w + 2*(l+w)*avgDepth

	costs, total := AggregateCosts(
		CostLine{Quantity: interior, UnitPrice: in["tilePrice"]},
		CostLine{Quantity: volume, UnitPrice: in["waterPrice"]},
	)

	return Values{
		"averageDepth": avgDepth,
		"volume":       volume,
		"litres":       volume * 1000,
		"interiorArea": interior,
		"tileCost":     costs[0],
		"fillCost":     costs[1],
		"totalCost":    total,
	}
}

func waterTankCylinderFormula(in Values) Values {
	r := in["diameter"] / 2
	volume := math.Pi * r * r * in["height"]
	return Values{
		"volume": volume,
		"litres": volume * 1000,
	}
}

func waterTankRectFormula(in Values) Values {
	volume := in["length"] * in["width"] * in["height"]
	return Values{
		"volume": volume,
		"litres": volume * 1000,
	}
}

func waterproofingFormula(in Values) Values {
	l, w := in["length"], in["width"]
	area := l*w + 2*(l+w)*in["upturnHeight"]
	litres := SafeDiv(area*in["coats"], in["coverage"])

	costs, total := AggregateCosts(
		CostLine{Quantity: litres, UnitPrice: in["materialPrice"]},
		CostLine{Quantity: area, UnitPrice: in["labourRate"]},
	)

	return Values{
		"area":         area,
		"litres":       litres,
		"materialCost": costs[0],
		"labourCost":   costs[1],
		"totalCost":    total,
	}
}
