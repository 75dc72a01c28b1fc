package indices

// Constituents as of February 2025. Update when the exchange rebalances.

var idx30 = []string{
	"ADRO", "AMMN", "ANTM", "ASII", "BBCA", "BBNI", "BBRI", "BBTN", "BMRI", "BRMS",
	"BUKA", "CPIN", "EMTK", "EXCL", "FTSE", "GOTO", "HRUM", "ICBP", "INCO", "INDF",
	"INKP", "INTP", "ITMG", "JSMR", "KLBF", "MAPI", "MBMA", "MDKA", "MEDC", "MIKA",
}

var lq45 = []string{
	"ADRO", "AMRT", "AMMN", "ANTM", "ARTO", "ASII", "ASRM", "AUTO", "BBCA", "BBNI",
	"BBRI", "BBTN", "BMRI", "BRMS", "BUKA", "CLEO", "CPIN", "EMTK", "EXCL", "GOTO",
	"HRUM", "ICBP", "INCO", "INDF", "INKP", "INTP", "ITMG", "JSMR", "KLBF", "MAPA",
	"MAPI", "MBMA", "MDKA", "MEDC", "MIKA", "MLPL", "PGEO", "PNLF", "PTBA", "SMGR",
	"TINS", "TLKM", "TOWR", "UNTR", "UNVR",
}

var idx80 = []string{
	"ADRO", "AGRO", "AKRA", "AMRT", "AMMN", "ANTM", "ARTO", "ASII", "AUTO", "BBCA",
	"BBNI", "BBRI", "BBTN", "BIMA", "BJBR", "BJTM", "BMRI", "BRMS", "BSDE", "BUKA",
	"CLEO", "CMRY", "CPIN", "DSSA", "EMTK", "ERAA", "ESSA", "EXCL", "FREN", "GGRM",
	"GOTO", "HRUM", "ICBP", "INCO", "INDF", "INKP", "INTP", "ISAT", "ITMG", "JPFA",
	"JSMR", "KLBF", "LPPF", "MAPA", "MAPI", "MBMA", "MAPA", "MDKA", "MEDC", "MIKA",
	"MLPL", "MNCN", "MYOR", "NISSAN", "PGAS", "PGEO", "PNLF", "PTBA", "PTPP", "PWON",
	"SCMA", "SIDO", "SMGR", "SMRA", "SOCI", "SSMS", "TINS", "TLKM", "TOWR", "TPIA",
	"UNTR", "UNVR", "WIKA", "WSKT", "ACES", "ADHI", "AGII", "AKRA", "BBRM", "BUDI",
}

func builtin() []Index {
	return []Index{
		{Name: "idx30", Label: "IDX30", Symbols: idx30},
		{Name: "lq45", Label: "LQ45", Symbols: lq45},
		{Name: "idx80", Label: "IDX80", Symbols: idx80},
	}
}
