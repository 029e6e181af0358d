package tables

// Coefficients below are the polyphase all-pass coefficients of a
// minimum order-for-attenuation half-band IIR filter, designed offline
// against a passband edge of 18000 Hz at a 44100 Hz reference rate
// (tbw = (44100/2 - 18000) / 44100), via the same elliptic pipeline
// exposed at runtime by the designer package
// (designer.CoefsFromSpec(attenDB, tbw)). A single coefficient set
// serves every cascade stage at a given precision: each 2x stage is a
// half-band filter at its own Nyquist-relative frequency, so one
// elliptic design reused at every stage is exact, not an approximation.

var iirCoefs48 = []float64{
	0.13533476491166646,
	0.44459059808236606,
	0.80006724816152464,
}

var iirCoefs72 = []float64{
	0.057369561854075074,
	0.2095436081316879,
	0.41352768544651608,
	0.6351349011042412,
	0.86943780167618079,
}

var iirCoefs96 = []float64{
	0.041451595119442179,
	0.15510356876083609,
	0.31565680487417447,
	0.49770230748789734,
	0.68754139898746236,
	0.88864894857989574,
}

var iirCoefs120 = []float64{
	0.024474822059978408,
	0.094054346501929856,
	0.19872162695194262,
	0.32597599445882591,
	0.46482603848881743,
	0.60862663328164524,
	0.75647898374965283,
	0.91392075106875681,
}

var iirCoefs144 = []float64{
	0.01964694276744065,
	0.076088803821783499,
	0.16263241326637887,
	0.2704225137521028,
	0.39083229614395837,
	0.51740920918216626,
	0.6470358330763375,
	0.7804624622392915,
	0.92268241849452293,
}

// iirDelayByRatio holds the accumulated group delay, in output
// samples, of an upsampling cascade built from the matching coefficient
// set and reaching the given overall ratio. Delay grows with ratio because
// each additional 2x stage runs at progressively higher output rate,
// scaling its contribution by the product of the ratios downstream of
// it (see cascade delay law).
var iirDelayByRatio = map[Precision]map[int]float64{
	Precision48: {
		2: 1.7496940383746078,
		4: 5.2458074666709908,
		8: 12.237216563214369,
	},
	Precision72: {
		2: 2.7585114879445096,
		4: 8.2709885671810284,
		8: 19.294807998353836,
	},
	Precision96: {
		2: 3.2585179790591527,
		4: 9.7702219785155417,
		8: 22.792299147807508,
	},
	Precision120: {
		2: 4.2585747808324257,
		4: 12.768773089029942,
		8: 29.787434767076643,
	},
	Precision144: {
		2: 4.7587520877867391,
		4: 14.268490804249851,
		8: 33.28603008701797,
	},
}

var iirCoefsByPrecision = map[Precision][]float64{
	Precision48:  iirCoefs48,
	Precision72:  iirCoefs72,
	Precision96:  iirCoefs96,
	Precision120: iirCoefs120,
	Precision144: iirCoefs144,
}
