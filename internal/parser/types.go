package parser

// Wire shapes of the LCU /lol-match-history/v1/games/{id} response. Only the
// fields the normalizer reads are declared.

type rawGame struct {
	GameID       int64  `json:"gameId"`
	GameCreation int64  `json:"gameCreation"` // epoch ms
	GameDuration int    `json:"gameDuration"` // seconds
	GameMode     string `json:"gameMode"`
	GameType     string `json:"gameType"`

	ParticipantIdentities []rawIdentity    `json:"participantIdentities"`
	Participants          []rawParticipant `json:"participants"`
	Teams                 []rawTeam        `json:"teams"`
}

type rawIdentity struct {
	ParticipantID int       `json:"participantId"`
	Player        rawPlayer `json:"player"`
}

type rawPlayer struct {
	SummonerName string `json:"summonerName"`
	GameName     string `json:"gameName"`
	TagLine      string `json:"tagLine"`
}

// displayName prefers the legacy summoner name; newer clients leave it blank
// and only fill the Riot ID game name.
func (p rawPlayer) displayName() string {
	if p.SummonerName != "" {
		return p.SummonerName
	}
	return p.GameName
}

type rawParticipant struct {
	ParticipantID int      `json:"participantId"`
	TeamID        int      `json:"teamId"`
	ChampionID    int      `json:"championId"`
	Stats         rawStats `json:"stats"`
}

type rawStats struct {
	Win     bool `json:"win"`
	Kills   int  `json:"kills"`
	Deaths  int  `json:"deaths"`
	Assists int  `json:"assists"`

	DoubleKills int `json:"doubleKills"`
	TripleKills int `json:"tripleKills"`
	QuadraKills int `json:"quadraKills"`
	PentaKills  int `json:"pentaKills"`

	ChampLevel                  int `json:"champLevel"`
	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	TotalMinionsKilled          int `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int `json:"neutralMinionsKilled"`
}

type rawTeam struct {
	TeamID          int      `json:"teamId"`
	Win             string   `json:"win"` // "Win" or "Fail"
	Bans            []rawBan `json:"bans"`
	DragonKills     int      `json:"dragonKills"`
	RiftHeraldKills int      `json:"riftHeraldKills"`
	BaronKills      int      `json:"baronKills"`
	TowerKills      int      `json:"towerKills"`
	InhibitorKills  int      `json:"inhibitorKills"`
}

type rawBan struct {
	ChampionID int `json:"championId"`
	PickTurn   int `json:"pickTurn"`
}
