package streaming

// Replies to $ commands, in the order the server documents them.

const clock = `(?:(?:([1-9][0-9]*):)?([0-5][0-9]?):)?([0-5][0-9]?) (?:hours?|minutes?|seconds?)`

func clockValue(m []string) any {
	return clockSeconds(m[0], m[1], m[2])
}

func replyRules() []Rule {
	return []Rule{
		newRule("allow team change", `\*Allow Team Changing: (On|Off)`,
			setting(EventGameInfo, SettingAllowTeamChange, firstOnOff)),
		newRule("auto balance", `\*Auto Team Balance: (On|Off)`,
			setting(EventGameInfo, SettingAutoBalance, firstOnOff)),
		newRule("autosave disconnect", `\*AutoSave Stats on Disconnect: (On|Off)`,
			setting(EventGameInfo, SettingAutoSaveDisconnect, firstOnOff)),
		newRule("autosave level", `\*AutoSave Stats on Level End: (On|Off)`,
			setting(EventGameInfo, SettingAutoSaveLevel, firstOnOff)),

		newRule("balancing", `Balancing Teams`, signal(EventBalancing)),
		newRule("banned", `\*Banning (.*) from game`, playerOnly(EventBanned)),
		newRule("cannot ban self", `\*Server can't ban themself`, invalid("Server can't ban themself.")),
		newRule("ban list", `\[([1-9]?[0-9]+)\](.*)`, func(m []string) Event {
			return event(EventBanList, BanListData{BanNum: toInt(m[0]), Player: m[1]})
		}),
		newRule("team change", `\*(.*) changes teams to the (.*) team`, func(m []string) Event {
			return event(EventTeamChange, TeamChangeData{Player: m[0], Team: m[1]})
		}),
		newRule("end level", `Ending level\.`, signal(EventEndLevel)),
		newRule("stats saved to file", `\*Stats saved to file`, signal(EventStatsSaved)),
		newRule("start level", `\*Entering observer mode.`, signal(EventStartLevel)),
		newRule("kicked", `\*Kicking (.*) from game`, playerOnly(EventKicked)),
		newRule("cannot kick self", `\*Server can't kick themself`, invalid("Server can't kick themself")),
		newRule("kill message filter", `\*Kill Message Filter: (None|Simple|Full)`,
			setting(EventGameInfo, SettingKillMsgFilter, first)),

		// $netgameinfo
		newRule("game name", `Game Name: (.*)`, setting(EventGameInfo, SettingGameName, first)),
		newRule("mission name", `Mission Name: (.*)`, setting(EventGameInfo, SettingMissionName, first)),
		newRule("script name", `Script Name: (.*)`, setting(EventGameInfo, SettingScriptName, first)),
		newRule("pps", `PPS: ([1-9][0-9]*)`, setting(EventGameInfo, SettingPPS, firstInt)),
		newRule("max players", `Max Players: ([1-9][0-9]*)`, setting(EventGameInfo, SettingMaxPlayers, firstInt)),
		newRule("accurate collisions", `Accurate Weapon Collisions: (On|Off)`,
			setting(EventGameInfo, SettingAccurateCollisions, firstOnOff)),
		newRule("send rotational velocity", `Send Rotational Velocity: (On|Off)`,
			setting(EventGameInfo, SettingSendRotVel, firstOnOff)),
		newRule("time limit", `Time Limit: (None|([1-9][0-9]*)) minutes?`,
			setting(EventGameInfo, SettingTimeLimit, func(m []string) any {
				if m[0] == "None" {
					return nil
				}
				return toInt(m[1])
			})),
		newRule("time left", `Time Left: `+clock, setting(EventGameInfo, SettingTimeLeft, clockValue)),
		newRule("goal", `Goal: (None|([1-9][0-9]*) points)`,
			setting(EventGameInfo, SettingKillGoal, func(m []string) any {
				if m[0] == "None" {
					return nil
				}
				return toInt(m[1])
			})),
		newRule("respawn time", `Respawn Time: ([1-9][0-9]*) seconds?`,
			setting(EventGameInfo, SettingRespawnTime, firstInt)),
		newRule("network model", `Network Model: (.*)`, setting(EventGameInfo, SettingNetworkModel, first)),

		// $playerinfo
		newRule("player role", `(.*) \((Server|Client)\)`,
			setting(EventPlayerInfo, SettingPlayer, func(m []string) any {
				return PlayerRole{Player: m[0], Role: m[1]}
			})),
		newRule("player team", `Team: (.*)`, setting(EventPlayerInfo, SettingTeam, first)),
		newRule("player number", `PlayerNum: ([1-9]?[0-9]+)`, setting(EventPlayerInfo, SettingPlayerNum, firstInt)),
		newRule("player address", `IP: ((?:[0-9]{1,3}\.){3}[0-9]{1,3}):([1-9]?[0-9]+)`,
			setting(EventPlayerInfo, SettingAddress, func(m []string) any {
				return Address{IP: m[0], Port: toInt(m[1])}
			})),
		newRule("player ship", `Ship: (.*)`, setting(EventPlayerInfo, SettingShip, first)),
		newRule("player time in game", `Total Time In Game: `+clock,
			setting(EventPlayerInfo, SettingTotalTimeInGame, clockValue)),

		newRule("player list", `([0-9]{2}): (.*)`, func(m []string) Event {
			return event(EventPlayer, PlayerListData{PlayerNum: toInt(m[0]), Name: m[1]})
		}),
		newRule("rehashed", `\*Rehashing Hosts\.allow and Hosts\.deny`, signal(EventRehashed)),
		newRule("remote admin", `\*Remote Administration: (On|Off)`,
			setting(EventGameInfo, SettingRemoteAdmin, firstOnOff)),

		// Must precede the "*name[id]" remote admin listing, which it also matches.
		newRule("hoard score", `\*(.*) scores ([1-9][0-9]*) points? \[([1-9][0-9]*)\]`, func(m []string) Event {
			return event(EventHoardScore, HoardScoreData{Player: m[0], Score: toInt(m[1]), TotalScore: toInt(m[2])})
		}),
		newRule("remote admin listing", `\*(.*)\[([0-9]+)\]`, func(m []string) Event {
			return event(EventRemoteAdmin, RemoteAdminData{LoginID: toInt(m[1]), Player: m[0]})
		}),
		newRule("remote admin logged out", `\*==(.*) has logged out==`, playerOnly(EventRemoteAdminLoggedOut)),
		newRule("remote admin password set", `\*Remote Administration Password Set`, signal(EventRemoteAdminPasswordSet)),
		newRule("ban removed", `Ban Removed`, func([]string) Event {
			return event(EventBanRemoved, BanRemovedData{Removed: true})
		}),
		newRule("ban not removed", `Couldn't remove ban`, func([]string) Event {
			return event(EventBanRemoved, BanRemovedData{Removed: false})
		}),
		newRule("stats saved", `\*Stats saved`, signal(EventStatsSaved)),
	}
}

func scoreRules() []Rule {
	return []Rule{
		// Monsterball columns run together when wide, so it is matched by width first.
		newRule("monsterball score", `(.*): +([0-9 ]{7})([0-9 ]{2})([0-9 ]{4})([0-9 ]{3})([0-9 ]{6})([1-9]?[0-9]+) *`, func(m []string) Event {
			return event(EventMonsterballScore, MonsterballScoreData{
				Player:   m[0],
				Points:   toColumn(m[1]),
				Blunders: toColumn(m[2]),
				Kills:    toColumn(m[3]),
				Deaths:   toColumn(m[4]),
				Suicides: toColumn(m[5]),
				Ping:     toInt(m[6]),
			})
		}),
		newRule("player score", `(.*): +(-?[1-9]?[0-9]+) +([1-9]?[0-9]+) +([1-9]?[0-9]+) +([1-9]?[0-9]+) +([1-9]?[0-9]+) *`, func(m []string) Event {
			return event(EventPlayerScore, PlayerScoreData{
				Player:   m[0],
				Points:   toInt(m[1]),
				Kills:    toInt(m[2]),
				Deaths:   toInt(m[3]),
				Suicides: toInt(m[4]),
				Ping:     toInt(m[5]),
			})
		}),
		newRule("team score", `(.*):(-?[1-9]?[0-9]+)`, func(m []string) Event {
			return event(EventTeamScore, TeamScoreData{Team: m[0], Score: toInt(m[1])})
		}),
		newRule("team player score", `(.*): (.*[^ ]) +(-?[1-9]?[0-9]+) +([1-9]?[0-9]+) +([1-9]?[0-9]+) +([1-9]?[0-9]+) +([1-9]?[0-9]+) *`, func(m []string) Event {
			return event(EventTeamPlayerScore, TeamPlayerScoreData{
				Player:   m[0],
				Team:     m[1],
				Points:   toInt(m[2]),
				Kills:    toInt(m[3]),
				Deaths:   toInt(m[4]),
				Suicides: toInt(m[5]),
				Ping:     toInt(m[6]),
			})
		}),
		newRule("player total score", `(.*): +(-?[1-9]?[0-9]+)\[(-?[1-9]?[0-9]+)\] +([1-9]?[0-9]+)\[([1-9]?[0-9]+)\] +([1-9]?[0-9]+)\[([1-9]?[0-9]+)\] +([1-9]?[0-9]+)\[([1-9]?[0-9]+)\] +([1-9]?[0-9]+) *`, func(m []string) Event {
			return event(EventPlayerTotalScore, PlayerTotalScoreData{
				Player:        m[0],
				Points:        toInt(m[1]),
				TotalPoints:   toInt(m[2]),
				Kills:         toInt(m[3]),
				TotalKills:    toInt(m[4]),
				Deaths:        toInt(m[5]),
				TotalDeaths:   toInt(m[6]),
				Suicides:      toInt(m[7]),
				TotalSuicides: toInt(m[8]),
				Ping:          toInt(m[9]),
			})
		}),
	}
}

func settingRules() []Rule {
	return []Rule{
		newRule("server hud names", `\*Server Max HUD Name Level: (.*)`,
			setting(EventGameInfo, SettingServerHUDNames, func(m []string) any {
				return hudLevel(m[0])
			})),
		newRule("set goal limit", `\*Goal Limit: (None|[1-9][0-9]*)`, func(m []string) Event {
			return event(EventSetGoalLimit, LimitData{Limit: optionalInt(m[0], "None")})
		}),
		newRule("set max players", `\*Max Players: ([1-9][0-9]*)`, func(m []string) Event {
			return event(EventSetMaxPlayers, ValueData{Value: toInt(m[0])})
		}),
		newRule("set pps", `\*Max PPS: ([1-9][0-9]*)`, func(m []string) Event {
			return event(EventSetPPS, ValueData{Value: toInt(m[0])})
		}),
		newRule("set respawn time", `\*Respawn Time: ([1-9][0-9]*)`, func(m []string) Event {
			return event(EventSetRespawnTime, ValueData{Value: toInt(m[0])})
		}),
		newRule("set team name", `(.*) changed team name to (.*)`, func(m []string) Event {
			return event(EventSetTeamName, TeamNameData{From: m[0], To: m[1]})
		}),
		newRule("set time limit", `\*Time Limit: (Off|[1-9][0-9]*)`, func(m []string) Event {
			return event(EventSetTimeLimit, LimitData{Limit: optionalInt(m[0], "Off")})
		}),
		newRule("stat messages", `\*Statistical Messages: (On|Off)`,
			setting(EventGameInfo, SettingStatMsgs, firstOnOff)),

		// $wait
		newRule("wait on", `Making Clients Wait`, signal(EventWaitOn)),
		newRule("wait off", `No Longer Making Clients Wait`, signal(EventWaitOff)),
		newRule("set wait", `Making Clients Wait ([1-9]?[0-9]+\.[0-9]{2}) seconds`, func(m []string) Event {
			return event(EventSetWait, WaitData{Seconds: toFloat(m[0])})
		}),
		newRule("wait time off", `Turning Off Client Wait Time`, func([]string) Event {
			return event(EventSetWait, WaitData{Seconds: 0})
		}),
		newRule("wait expired", `Allowing Clients To Play`, signal(EventWaitExpired)),
	}
}
