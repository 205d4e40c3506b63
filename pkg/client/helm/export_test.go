package helm

// MergeValuesForTests exposes the chart values merge logic.
var MergeValuesForTests = mergeValues

// ParseChartRefForTests exposes repo/name splitting of chart references.
var ParseChartRefForTests = parseChartRef
