package console

import (
	"math"
	"strconv"
	"strings"
)

// Typed wrappers around Send for the server's $ commands. Arguments are
// checked before anything is written; a rejected argument returns a
// *ValidationError.

const maxPlayerNum = 31

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func checkPlayerNum(playerNum int) error {
	if playerNum < 0 || playerNum > maxPlayerNum {
		return invalidArg("playerNum", "%d is not an integer between 0 and %d", playerNum, maxPlayerNum)
	}
	return nil
}

func checkPositive(field string, value int) error {
	if value < 1 {
		return invalidArg(field, "%d is not a positive integer", value)
	}
	return nil
}

func checkText(field, value, hint string) error {
	if value == "" {
		return invalidArg(field, "%s", hint)
	}
	return nil
}

func checkChoice(field, value string, choices ...string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return invalidArg(field, "%q is not one of %s", value, strings.Join(choices, ", "))
}

func (c *Console) sendf(command string, args ...string) error {
	if len(args) == 0 {
		return c.Send(command)
	}
	return c.Send(command + " " + strings.Join(args, " "))
}

// AllowTeamChange turns team changing on or off.
func (c *Console) AllowTeamChange(allow bool) error {
	return c.sendf("$allowteamchange", onOff(allow))
}

// AutoBalance turns automatic team balancing on or off.
func (c *Console) AutoBalance(on bool) error {
	return c.sendf("$autobalance", onOff(on))
}

// AutoSaveDisconnect toggles saving a player's stats when they disconnect.
func (c *Console) AutoSaveDisconnect(on bool) error {
	return c.sendf("$autosavedisconnect", onOff(on))
}

// AutoSaveLevel toggles saving stats at the end of each level.
func (c *Console) AutoSaveLevel(on bool) error {
	return c.sendf("$autosavelevel", onOff(on))
}

// Balance asks the server to even out the teams.
func (c *Console) Balance() error {
	return c.sendf("$balance")
}

// Ban bans the player in slot playerNum.
func (c *Console) Ban(playerNum int) error {
	if err := checkPlayerNum(playerNum); err != nil {
		return err
	}
	return c.sendf("$ban", strconv.Itoa(playerNum))
}

// BanList asks for the list of banned players.
func (c *Console) BanList() error {
	return c.sendf("$banlist")
}

// ChangeTeam moves a player to the named team.
func (c *Console) ChangeTeam(playerNum int, team string) error {
	if err := checkPlayerNum(playerNum); err != nil {
		return err
	}
	if err := checkText("team", team, "enter the name of the team to change to"); err != nil {
		return err
	}
	return c.sendf("$changeteam", strconv.Itoa(playerNum), team)
}

// EndLevel ends the current level.
func (c *Console) EndLevel() error {
	return c.sendf("$endlevel")
}

// Kick removes the player in slot playerNum from the game.
func (c *Console) Kick(playerNum int) error {
	if err := checkPlayerNum(playerNum); err != nil {
		return err
	}
	return c.sendf("$kick", strconv.Itoa(playerNum))
}

// KillMsgFilter sets the kill message filter to none, simple or full.
func (c *Console) KillMsgFilter(filter string) error {
	if err := checkChoice("killMsgFilter", filter, "none", "simple", "full"); err != nil {
		return err
	}
	return c.sendf("$killmsgfilter", filter)
}

// NetGameInfo asks for the current game settings.
func (c *Console) NetGameInfo() error {
	return c.sendf("$netgameinfo")
}

// PlayerInfo asks for the details of one player.
func (c *Console) PlayerInfo(playerNum int) error {
	if err := checkPlayerNum(playerNum); err != nil {
		return err
	}
	return c.sendf("$playerinfo", strconv.Itoa(playerNum))
}

// Players asks for the list of connected players.
func (c *Console) Players() error {
	return c.sendf("$players")
}

// Rehash reloads the server's hosts.allow and hosts.deny.
func (c *Console) Rehash() error {
	return c.sendf("$rehash")
}

// RemoteAdmin turns in-game remote administration on or off.
func (c *Console) RemoteAdmin(on bool) error {
	return c.sendf("$remoteadmin", onOff(on))
}

// RemoteAdminLogout logs out one remote administrator, or all of them when
// loginID is nil.
func (c *Console) RemoteAdminLogout(loginID *int) error {
	if loginID == nil {
		return c.sendf("$remoteadminlogout")
	}
	if *loginID < 0 {
		return invalidArg("loginID", "%d is negative", *loginID)
	}
	return c.sendf("$remoteadminlogout", strconv.Itoa(*loginID))
}

// RemoteAdminPass sets the in-game remote administration password.
func (c *Console) RemoteAdminPass(password string) error {
	if err := checkText("password", password, "set this to the password for remote login"); err != nil {
		return err
	}
	return c.sendf("$remoteadminpass", password)
}

// RemoveBan lifts the ban numbered banNum in the ban list.
func (c *Console) RemoveBan(banNum int) error {
	if banNum < 0 {
		return invalidArg("banNum", "%d is negative", banNum)
	}
	return c.sendf("$removeban", strconv.Itoa(banNum))
}

// SaveStats writes the game statistics to a file on the server.
func (c *Console) SaveStats() error {
	return c.sendf("$savestats")
}

// Scores asks for the current scores.
func (c *Console) Scores() error {
	return c.sendf("$scores")
}

// ServerHUDNames sets the highest HUD name level clients may use: none, team or full.
func (c *Console) ServerHUDNames(level string) error {
	if err := checkChoice("serverHudNames", level, "none", "team", "full"); err != nil {
		return err
	}
	return c.sendf("$serverhudnames", level)
}

// SetGoalLimit sets the goal limit. A nil limit turns it off.
func (c *Console) SetGoalLimit(limit *int) error {
	if limit == nil {
		return c.sendf("$setgoallimit", "0")
	}
	if err := checkPositive("goalLimit", *limit); err != nil {
		return err
	}
	return c.sendf("$setgoallimit", strconv.Itoa(*limit))
}

// SetMaxPlayers sets the player cap, 2 to 32.
func (c *Console) SetMaxPlayers(maxPlayers int) error {
	if maxPlayers < 2 || maxPlayers > 32 {
		return invalidArg("maxPlayers", "%d is not an integer between 2 and 32", maxPlayers)
	}
	return c.sendf("$setmaxplayers", strconv.Itoa(maxPlayers))
}

// SetPPS sets the maximum packets per second, 1 to 20.
func (c *Console) SetPPS(pps int) error {
	if pps < 1 || pps > 20 {
		return invalidArg("pps", "%d is not an integer between 1 and 20", pps)
	}
	return c.sendf("$setpps", strconv.Itoa(pps))
}

// SetRespawnTime sets the powerup respawn time in seconds.
func (c *Console) SetRespawnTime(seconds int) error {
	if err := checkPositive("respawnTime", seconds); err != nil {
		return err
	}
	return c.sendf("$setrespawntime", strconv.Itoa(seconds))
}

// SetTeamName renames team 0 to 3.
func (c *Console) SetTeamName(teamNum int, name string) error {
	if teamNum < 0 || teamNum > 3 {
		return invalidArg("teamNum", "%d is not an integer between 0 and 3", teamNum)
	}
	if err := checkText("teamName", name, "set this to the new name of the team"); err != nil {
		return err
	}
	return c.sendf("$setteamname", strconv.Itoa(teamNum), name)
}

// SetTimeLimit sets the level time limit in minutes. A nil limit turns it off.
func (c *Console) SetTimeLimit(minutes *int) error {
	if minutes == nil {
		return c.sendf("$settimelimit", "0")
	}
	if err := checkPositive("timeLimit", *minutes); err != nil {
		return err
	}
	return c.sendf("$settimelimit", strconv.Itoa(*minutes))
}

// StatMsgs turns statistical messages on or off.
func (c *Console) StatMsgs(on bool) error {
	return c.sendf("$statmsgs", onOff(on))
}

// Wait makes clients wait at the start of each level, or stops doing so.
func (c *Console) Wait(on bool) error {
	return c.sendf("$wait", onOff(on))
}

// WaitSeconds makes clients wait the given number of seconds. Zero turns the wait time off.
func (c *Console) WaitSeconds(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return invalidArg("time", "%v is not a non-negative number of seconds", seconds)
	}
	return c.sendf("$wait", strconv.FormatFloat(seconds, 'f', -1, 64))
}

// Warp changes to the given level of the mission.
func (c *Console) Warp(level int) error {
	if err := checkPositive("level", level); err != nil {
		return err
	}
	return c.sendf("$warp", strconv.Itoa(level))
}

// Say broadcasts text as the server.
func (c *Console) Say(text string) error {
	if err := checkText("text", text, "enter the text to say as the server"); err != nil {
		return err
	}
	return c.sendf("say", text)
}

// Quit ends the remote console session. The server closes the connection.
func (c *Console) Quit() error {
	return c.sendf("quit")
}
