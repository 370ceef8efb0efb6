package streaming

import (
	"encoding/json"
	"time"
)

// Kind names an event. The values are stable and used as journal and metric labels.
type Kind string

// Transport events
const (
	EventConnected Kind = "connected"
	EventEnd       Kind = "end"
	EventTimeout   Kind = "timeout"
	EventError     Kind = "error"
	EventClose     Kind = "close"
	EventRaw       Kind = "raw"
)

// Session and chat events
const (
	EventInvalid                Kind = "invalid"
	EventLoggedIn               Kind = "loggedin"
	EventCommand                Kind = "command"
	EventSay                    Kind = "say"
	EventGuideBot               Kind = "guidebot"
	EventRemoteConnection       Kind = "remoteconnection"
	EventInvalidPassword        Kind = "invalidpassword"
	EventRemoteConnectionClosed Kind = "remoteconnectionclosed"
	EventRemoteCommand          Kind = "remotecommand"
	EventRemoteAdminLoggedIn    Kind = "remoteadminloggedin"
	EventRemoteAdminCommand     Kind = "remoteadmincommand"
	EventRemoteAdminLoggedOut   Kind = "remoteadminloggedout"
	EventRemoteAdmin            Kind = "remoteadmin"
	EventRemoteAdminPasswordSet Kind = "remoteadminpasswordset"
	EventJoined                 Kind = "joined"
	EventLeft                   Kind = "left"
	EventDisconnected           Kind = "disconnected"
	EventObserving              Kind = "observing"
	EventUnobserving            Kind = "unobserving"
	EventShutdown               Kind = "shutdown"
)

// Command replies and settings
const (
	EventGameInfo       Kind = "gameinfo"
	EventPlayerInfo     Kind = "playerinfo"
	EventBalancing      Kind = "balancing"
	EventBanned         Kind = "banned"
	EventBanList        Kind = "banlist"
	EventBanRemoved     Kind = "banremoved"
	EventTeamChange     Kind = "teamchange"
	EventEndLevel       Kind = "endlevel"
	EventStatsSaved     Kind = "statssaved"
	EventStartLevel     Kind = "startlevel"
	EventKicked         Kind = "kicked"
	EventPlayer         Kind = "player"
	EventRehashed       Kind = "rehashed"
	EventSetGoalLimit   Kind = "setgoallimit"
	EventSetMaxPlayers  Kind = "setmaxplayers"
	EventSetPPS         Kind = "setpps"
	EventSetRespawnTime Kind = "setrespawntime"
	EventSetTeamName    Kind = "setteamname"
	EventSetTimeLimit   Kind = "settimelimit"
	EventSetWait        Kind = "setwait"
	EventWaitOn         Kind = "waiton"
	EventWaitOff        Kind = "waitoff"
	EventWaitExpired    Kind = "waitexpired"
)

// Score tables
const (
	EventHoardScore       Kind = "hoardscore"
	EventMonsterballScore Kind = "monsterballscore"
	EventPlayerScore      Kind = "playerscore"
	EventTeamScore        Kind = "teamscore"
	EventTeamPlayerScore  Kind = "teamplayerscore"
	EventPlayerTotalScore Kind = "playertotalscore"
)

// Kill feed, objectives and statistical messages
const (
	EventKill               Kind = "kill"
	EventDeath              Kind = "death"
	EventRobotDeath         Kind = "robotdeath"
	EventSuicide            Kind = "suicide"
	EventHyperOrb           Kind = "hyperorb"
	EventHyperOrbLost       Kind = "hyperorblost"
	EventHyperOrbScore      Kind = "hyperorbscore"
	EventFlagPickup         Kind = "flagpickup"
	EventFlagScore          Kind = "flagscore"
	EventFlagReturn         Kind = "flagreturn"
	EventHatTrick           Kind = "hattrick"
	EventMonsterballPoint   Kind = "monsterballpoint"
	EventMonsterballBlunder Kind = "monsterballblunder"
	EventEntropyBase        Kind = "entropybase"
	EventStatRevenge        Kind = "statrevenge"
	EventStatKillStreak     Kind = "statkillstreak"
	EventStatDeathStreak    Kind = "statdeathstreak"
	EventStatEfficiency     Kind = "statefficiency"
	EventStatKills          Kind = "statkills"
	EventStatKillInterval   Kind = "statkillinterval"
	EventStatDeathInterval  Kind = "statdeathinterval"
)

// EventUnknown is emitted for every line no rule recognizes.
const EventUnknown Kind = "unknown"

// Kinds consumed inside the parser; they never reach subscribers.
const (
	kindIgnored        Kind = "ignored"
	kindPasswordPrompt Kind = "passwordprompt"
)

// Event is one classified line or one transport state change.
type Event struct {
	Kind      Kind
	Line      string // raw bytes of the source line; empty for transport events
	Data      any
	Timestamp time.Time
}

// Setting names carried by gameinfo and playerinfo events.
const (
	SettingAllowTeamChange    = "allowTeamChange"
	SettingAutoBalance        = "autoBalance"
	SettingAutoSaveDisconnect = "autoSaveDisconnect"
	SettingAutoSaveLevel      = "autoSaveLevel"
	SettingKillMsgFilter      = "killMsgFilter"
	SettingGameName           = "gameName"
	SettingMissionName        = "missionName"
	SettingScriptName         = "scriptName"
	SettingPPS                = "pps"
	SettingMaxPlayers         = "maxPlayers"
	SettingAccurateCollisions = "accurateCollisions"
	SettingSendRotVel         = "sendRotVel"
	SettingTimeLimit          = "timeLimit"
	SettingTimeLeft           = "timeLeft"
	SettingKillGoal           = "killGoal"
	SettingRespawnTime        = "respawnTime"
	SettingNetworkModel       = "networkModel"
	SettingRemoteAdmin        = "remoteAdmin"
	SettingServerHUDNames     = "serverHudNames"
	SettingStatMsgs           = "statMsgs"

	SettingPlayer          = "player"
	SettingTeam            = "team"
	SettingPlayerNum       = "playerNum"
	SettingAddress         = "address"
	SettingShip            = "ship"
	SettingTotalTimeInGame = "totalTimeInGame"
)

// Setting is one configuration or player attribute. Value is a bool, int,
// string, PlayerRole, Address, or nil when the server reports it as unset.
type Setting struct {
	Name  string
	Value any
}

// DurationSettings lists settings whose int value is a number of seconds.
var DurationSettings = map[string]bool{
	SettingTimeLeft:        true,
	SettingTotalTimeInGame: true,
}

type PlayerRole struct {
	Player string
	Role   string // "Server" or "Client"
}

type Address struct {
	IP   string
	Port int
}

type ErrorData struct {
	Err error
}

func (d ErrorData) MarshalJSON() ([]byte, error) {
	msg := ""
	if d.Err != nil {
		msg = d.Err.Error()
	}
	return json.Marshal(map[string]string{"error": msg})
}

type CloseData struct {
	HadError bool
}

type UnknownData struct {
	Line string
}

type InvalidData struct {
	Message string
}

type IPData struct {
	IP string
}

type RemoteCommandData struct {
	IP      string
	Command string
}

type CommandData struct {
	Command string
}

type SayData struct {
	Player string
	Text   string
}

type TextData struct {
	Text string
}

// PlayerData is the payload of every event that only names a player.
type PlayerData struct {
	Player string
}

type JoinedData struct {
	Player string
	Team   string // empty outside team games
}

type RemoteAdminCommandData struct {
	Player  string
	Command string
}

type RemoteAdminData struct {
	LoginID int
	Player  string
}

type BanListData struct {
	BanNum int
	Player string
}

type BanRemovedData struct {
	Removed bool
}

type TeamChangeData struct {
	Player string
	Team   string
}

type PlayerListData struct {
	PlayerNum int
	Name      string
}

type HoardScoreData struct {
	Player     string
	Score      int
	TotalScore int
}

type MonsterballScoreData struct {
	Player   string
	Points   int
	Blunders int
	Kills    int
	Deaths   int
	Suicides int
	Ping     int
}

type PlayerScoreData struct {
	Player   string
	Points   int
	Kills    int
	Deaths   int
	Suicides int
	Ping     int
}

type TeamScoreData struct {
	Team  string
	Score int
}

type TeamPlayerScoreData struct {
	Player   string
	Team     string
	Points   int
	Kills    int
	Deaths   int
	Suicides int
	Ping     int
}

// PlayerTotalScoreData holds a score row with the level value and the
// running total kept by persistent-score modes.
type PlayerTotalScoreData struct {
	Player        string
	Points        int
	TotalPoints   int
	Kills         int
	TotalKills    int
	Deaths        int
	TotalDeaths   int
	Suicides      int
	TotalSuicides int
	Ping          int
}

// LimitData carries a limit where nil means no limit.
type LimitData struct {
	Limit *int
}

type ValueData struct {
	Value int
}

type TeamNameData struct {
	From string
	To   string
}

type WaitData struct {
	Seconds float64
}

// KillData is normalized to killer/killed whatever order the phrasing uses.
type KillData struct {
	Killer string
	Killed string
	Weapon string // empty for generic phrasings
}

type PointsData struct {
	Player string
	Points int
}

type FlagData struct {
	Player string
	Team   string
	Flag   string
}

type FlagScoreData struct {
	Player string
	Team   string
	Flags  []string
}

type PlayerTeamData struct {
	Player string
	Team   string
}

type HatTrickData struct {
	Player string
	First  bool
}

type EntropyBaseData struct {
	Player string
	Team   string
	Room   string
}

type KillerKilledData struct {
	Killer string
	Killed string
}

type StreakData struct {
	Player string
	Count  int
}

type EfficiencyData struct {
	Player     string
	Efficiency float64
}

type StatKillsData struct {
	Killer string
	Killed string
	Count  int
}

type IntervalData struct {
	Player  string
	Seconds int
}
