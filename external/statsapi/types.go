package statsapi

// Wire shapes for the StatsAPI responses we consume. Only the fields we
// read are declared; the feed carries far more.

type scheduleEnvelope struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string          `json:"date"`
	Games []scheduledGame `json:"games"`
}

type scheduledGame struct {
	GamePk       int64      `json:"gamePk"`
	OfficialDate string     `json:"officialDate"`
	Status       gameStatus `json:"status"`
}

type gameStatus struct {
	DetailedState string `json:"detailedState"`
	AbstractState string `json:"abstractGameState"`
}

type feedEnvelope struct {
	GameData feedGameData `json:"gameData"`
	LiveData feedLiveData `json:"liveData"`
}

type feedGameData struct {
	Game struct {
		Pk int64 `json:"pk"`
	} `json:"game"`
	Datetime struct {
		OfficialDate string `json:"officialDate"`
	} `json:"datetime"`
	Status gameStatus `json:"status"`
	Teams  struct {
		Away feedTeam `json:"away"`
		Home feedTeam `json:"home"`
	} `json:"teams"`
	Venue struct {
		Name string `json:"name"`
	} `json:"venue"`
}

type feedTeam struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type feedLiveData struct {
	Linescore feedLinescore `json:"linescore"`
	Boxscore  feedBoxscore  `json:"boxscore"`
}

type feedLinescore struct {
	Innings []feedInning `json:"innings"`
	Teams   struct {
		Away feedLineTotals `json:"away"`
		Home feedLineTotals `json:"home"`
	} `json:"teams"`
}

type feedInning struct {
	Num  int            `json:"num"`
	Away feedInningSide `json:"away"`
	Home feedInningSide `json:"home"`
}

type feedInningSide struct {
	Runs int `json:"runs"`
}

type feedLineTotals struct {
	Runs int `json:"runs"`
}

type feedBoxscore struct {
	Teams struct {
		Away feedBoxTeam `json:"away"`
		Home feedBoxTeam `json:"home"`
	} `json:"teams"`
}

type feedBoxTeam struct {
	Team    feedTeam                 `json:"team"`
	Players map[string]feedBoxPlayer `json:"players"`
}

type feedBoxPlayer struct {
	Person struct {
		ID       int64  `json:"id"`
		FullName string `json:"fullName"`
	} `json:"person"`
	Position struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
	BattingOrder string `json:"battingOrder"`
	Stats        struct {
		Batting  feedBattingStats  `json:"batting"`
		Pitching feedPitchingStats `json:"pitching"`
	} `json:"stats"`
}

type feedBattingStats struct {
	AtBats           int `json:"atBats"`
	PlateAppearances int `json:"plateAppearances"`
	Hits             int `json:"hits"`
	Doubles          int `json:"doubles"`
	Triples          int `json:"triples"`
	HomeRuns         int `json:"homeRuns"`
	BaseOnBalls      int `json:"baseOnBalls"`
	HitByPitch       int `json:"hitByPitch"`
	SacFlies         int `json:"sacFlies"`
	StolenBases      int `json:"stolenBases"`
	RBI              int `json:"rbi"`
	Runs             int `json:"runs"`
}

type feedPitchingStats struct {
	InningsPitched string `json:"inningsPitched"`
	Outs           int    `json:"outs"`
	GamesStarted   int    `json:"gamesStarted"`
	BattersFaced   int    `json:"battersFaced"`
	Hits           int    `json:"hits"`
	Runs           int    `json:"runs"`
	EarnedRuns     int    `json:"earnedRuns"`
	BaseOnBalls    int    `json:"baseOnBalls"`
	StrikeOuts     int    `json:"strikeOuts"`
	HomeRuns       int    `json:"homeRuns"`
	HitBatsmen     int    `json:"hitBatsmen"`
}

type standingsEnvelope struct {
	Records []standingsRecord `json:"records"`
}

type standingsRecord struct {
	League      map[string]any   `json:"league"`
	Division    map[string]any   `json:"division"`
	TeamRecords []map[string]any `json:"teamRecords"`
}
