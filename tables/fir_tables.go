package tables

// Taps below are Kaiser-windowed half-band FIR designs: even-indexed
// taps (0-based) other than the centre are zero by the half-band construction, the centre
// tap is ~0.5, and the filter is symmetric (tap[i] == tap[L-1-i]).
// Designed offline for the same passband edge / reference rate as the
// IIR tables, stopband ripple translated to a Kaiser beta via the
// standard Kaiser/Bellanger approximation.

var firTaps48 = []float64{
	0,
	-0.0023602906619007058,
	0,
	0.0054973203880912327,
	0,
	-0.010615526334563733,
	0,
	0.018619217485721998,
	0,
	-0.031234831486786775,
	0,
	0.052809398504825855,
	0,
	-0.099367104378393675,
	0,
	0.31635146932888897,
	0.50060069430823384,
	0.31635146932888897,
	0,
	-0.099367104378393675,
	0,
	0.052809398504825855,
	0,
	-0.031234831486786775,
	0,
	0.018619217485721998,
	0,
	-0.010615526334563733,
	0,
	0.0054973203880912327,
	0,
	-0.0023602906619007058,
	0,
}

var firTaps72 = []float64{
	0,
	0.00016614441481782038,
	0,
	-0.00050403161703365795,
	0,
	0.0011458686742295335,
	0,
	-0.002239119370778401,
	0,
	0.0039696109553181667,
	0,
	-0.0065736756054003836,
	0,
	0.010368219898747189,
	0,
	-0.01582455734418152,
	0,
	0.023755632622584223,
	0,
	-0.035842034104689412,
	0,
	0.056438736497667522,
	0,
	-0.10162194424937547,
	0,
	0.31677538322073134,
	0.49997153201472583,
	0.31677538322073134,
	0,
	-0.10162194424937547,
	0,
	0.056438736497667522,
	0,
	-0.035842034104689412,
	0,
	0.023755632622584223,
	0,
	-0.01582455734418152,
	0,
	0.010368219898747189,
	0,
	-0.0065736756054003836,
	0,
	0.0039696109553181728,
	0,
	-0.002239119370778401,
	0,
	0.0011458686742295335,
	0,
	-0.00050403161703365795,
	0,
	0.00016614441481782073,
	0,
}

var firTaps96 = []float64{
	0,
	1.4055535296775574e-05,
	0,
	-5.6620915566357318e-05,
	0,
	0.00015515816675125107,
	0,
	-0.00035085074195082683,
	0,
	0.00070161817737720634,
	0,
	-0.0012847487142529387,
	0,
	0.0021995744233193684,
	0,
	-0.0035711704260322414,
	0,
	0.0055573476587426358,
	0,
	-0.008363781301540538,
	0,
	0.012277872058671062,
	0,
	-0.017746654316106128,
	0,
	0.025567768780904006,
	0,
	-0.037418302425050683,
	0,
	0.057662996918394049,
	0,
	-0.10240123232720826,
	0,
	0.31705761397374183,
	0.49999871094901943,
	0.31705761397374183,
	0,
	-0.10240123232720826,
	0,
	0.057662996918394167,
	0,
	-0.037418302425050683,
	0,
	0.025567768780904006,
	0,
	-0.017746654316106128,
	0,
	0.012277872058671062,
	0,
	-0.008363781301540538,
	0,
	0.0055573476587426358,
	0,
	-0.0035711704260322414,
	0,
	0.0021995744233193684,
	0,
	-0.0012847487142529387,
	0,
	0.00070161817737720634,
	0,
	-0.00035085074195082683,
	0,
	0.00015515816675125096,
	0,
	-5.6620915566357196e-05,
	0,
	1.405553529677553e-05,
	0,
}

var firTaps120 = []float64{
	0,
	-1.0767132711748293e-06,
	0,
	5.3226873858666445e-06,
	0,
	-1.6768543740270006e-05,
	0,
	4.2486430715468709e-05,
	0,
	-9.3786176868930932e-05,
	0,
	0.00018758918593541767,
	0,
	-0.0003478705645847473,
	0,
	0.00060709401854725821,
	0,
	-0.0010076030362490271,
	0,
	0.0016030280703440295,
	0,
	-0.0024599538947478986,
	0,
	0.0036604211226651403,
	0,
	-0.0053064319406765995,
	0,
	0.0075287742647676403,
	0,
	-0.010504878661187782,
	0,
	0.014496006071286685,
	0,
	-0.019928643902486214,
	0,
	0.027588617621433921,
	0,
	-0.039152219018122748,
	0,
	0.058995448278913558,
	0,
	-0.10324055739150589,
	0,
	0.31734497876189366,
	0.5000000466591048,
	0.31734497876189366,
	0,
	-0.10324055739150589,
	0,
	0.05899544827891369,
	0,
	-0.039152219018122748,
	0,
	0.027588617621433921,
	0,
	-0.019928643902486214,
	0,
	0.014496006071286685,
	0,
	-0.010504878661187782,
	0,
	0.0075287742647676403,
	0,
	-0.0053064319406765995,
	0,
	0.0036604211226651403,
	0,
	-0.0024599538947478986,
	0,
	0.0016030280703440295,
	0,
	-0.0010076030362490287,
	0,
	0.00060709401854725821,
	0,
	-0.0003478705645847473,
	0,
	0.00018758918593541767,
	0,
	-9.3786176868930932e-05,
	0,
	4.2486430715468777e-05,
	0,
	-1.6768543740269979e-05,
	0,
	5.3226873858666445e-06,
	0,
	-1.0767132711748293e-06,
	0,
}

var firTaps144 = []float64{
	0,
	-9.0980413499065103e-08,
	0,
	5.6378234139687877e-07,
	0,
	-2.0693429606635104e-06,
	0,
	5.9324967258089303e-06,
	0,
	-1.4567142066537331e-05,
	0,
	3.2036529345461124e-05,
	0,
	-6.4755506719296039e-05,
	0,
	0.00012232061101606376,
	0,
	-0.00021843844683588817,
	0,
	0.00037191215943989332,
	0,
	-0.00060764639917276829,
	0,
	0.00095765139878868004,
	0,
	-0.0014620779451835501,
	0,
	0.0021704139551082142,
	0,
	-0.0031431489806651187,
	0,
	0.0044545220225537261,
	0,
	-0.0061975332562648026,
	0,
	0.0084935073719592767,
	0,
	-0.01151085854067033,
	0,
	0.015503258298402845,
	0,
	-0.020891966014816972,
	0,
	0.02846070577443862,
	0,
	-0.039887280017374308,
	0,
	0.059552935932906323,
	0,
	-0.10358863394284772,
	0,
	0.31746330618637525,
	0.49999999999318001,
	0.31746330618637525,
	0,
	-0.10358863394284772,
	0,
	0.059552935932906323,
	0,
	-0.039887280017374308,
	0,
	0.02846070577443862,
	0,
	-0.020891966014817014,
	0,
	0.015503258298402845,
	0,
	-0.01151085854067033,
	0,
	0.0084935073719592767,
	0,
	-0.0061975332562648026,
	0,
	0.0044545220225537347,
	0,
	-0.0031431489806651187,
	0,
	0.0021704139551082142,
	0,
	-0.0014620779451835501,
	0,
	0.00095765139878868004,
	0,
	-0.00060764639917276829,
	0,
	0.00037191215943989332,
	0,
	-0.00021843844683588817,
	0,
	0.00012232061101606406,
	0,
	-6.4755506719296039e-05,
	0,
	3.2036529345461124e-05,
	0,
	-1.4567142066537331e-05,
	0,
	5.9324967258089303e-06,
	0,
	-2.0693429606635133e-06,
	0,
	5.6378234139687877e-07,
	0,
	-9.0980413499064521e-08,
	0,
}

// firDelayByRatioUp/Down hold the accumulated group delay, in output
// samples, of an FIR half-band cascade reaching the given overall
// ratio, separately for upsampling and downsampling (the two
// directions traverse the same stages in opposite order, so their
// delay-scaling accumulates differently — see cascade delay law).
var firDelayByRatioUp = map[Precision]map[int]float64{
	Precision48: {
		2:  16,
		4:  48,
		8:  112,
		16: 240,
	},
	Precision72: {
		2:  26,
		4:  78,
		8:  182,
		16: 390,
	},
	Precision96: {
		2:  34,
		4:  102,
		8:  238,
		16: 510,
	},
	Precision120: {
		2:  44,
		4:  132,
		8:  308,
		16: 660,
	},
	Precision144: {
		2:  52,
		4:  156,
		8:  364,
		16: 780,
	},
}

var firDelayByRatioDown = map[Precision]map[int]float64{
	Precision48: {
		2:  8,
		4:  12,
		8:  14,
		16: 15,
	},
	Precision72: {
		2:  13,
		4:  19.5,
		8:  22.75,
		16: 24.375,
	},
	Precision96: {
		2:  17,
		4:  25.5,
		8:  29.75,
		16: 31.875,
	},
	Precision120: {
		2:  22,
		4:  33,
		8:  38.5,
		16: 41.25,
	},
	Precision144: {
		2:  26,
		4:  39,
		8:  45.5,
		16: 48.75,
	},
}

var firTapsByPrecision = map[Precision][]float64{
	Precision48:  firTaps48,
	Precision72:  firTaps72,
	Precision96:  firTaps96,
	Precision120: firTaps120,
	Precision144: firTaps144,
}
