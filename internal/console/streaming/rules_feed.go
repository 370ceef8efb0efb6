package streaming

// Kill feed phrasings name players with {name} markup. Some put the killer
// first and some the victim; every rule reports killer and killed the same way.

func killerFirst(weapon string) func([]string) Event {
	return func(m []string) Event {
		return event(EventKill, KillData{Killer: m[0], Killed: m[1], Weapon: weapon})
	}
}

func killedFirst(weapon string) func([]string) Event {
	return func(m []string) Event {
		return event(EventKill, KillData{Killer: m[1], Killed: m[0], Weapon: weapon})
	}
}

func killFeedRules() []Rule {
	return []Rule{
		newRule("kill", `\*{name} (?:tags|downs|takes out) {name}(?:'s toe|!)?`, killerFirst("")),
		newRule("killed by", `\*{name} (?:wishes he was as good as|can't outmaneuver|gets shot down by|gets destroyed by|was no match for|is out-gunned by|becomes another statistic for|was killed by) {name}!?`, killedFirst("")),
		newRule("death", `\*{name} was killed`, playerOnly(EventDeath)),
		newRule("robot death", `\*{name} was killed by a robot`, playerOnly(EventRobotDeath)),

		// Custom kill message sets shipped by server operators.
		newRule("custom killed by", `\*{name} (?:knows|got blasted by|got messed up by|got killed by|got butchered by|begs for) {name}(?: is his god|'s mercy)?`, killedFirst("")),
		newRule("custom kill", `\*{name} (?:sucks|realizes) {name}(?:'s milk|'s power| is a better player)`, killerFirst("")),

		newRule("suicide", `\*{name} (?:experiences technical difficulties|spins out of control!|pushes the envelope!|pushes the red button!|has a major malfunction!|fumbles for the pilots manual!|killed himself)`, playerOnly(EventSuicide)),
		newRule("custom suicide", `\*{name}(?: blasts himself| Bursts his own bubble| doesn't know his own strength| doesn't wish to live anymore| SUCKS!| shags himself)`, playerOnly(EventSuicide)),
		newRule("no prize", `\*No prize for {name}`, playerOnly(EventSuicide)),

		// EMD, impact mortar and black shark kills have no message of their own.
		newRule("lasers", `\*{name}'s Laser blasts {name} to smithereens`, killerFirst("lasers")),
		newRule("super lasers", `\*{name}'s Super Laser blasts {name} to smithereens`, killerFirst("super lasers")),
		newRule("vauss", `\*{name} punctures {name}'s ship with the Vauss`, killerFirst("vauss")),
		newRule("mass driver", `\*{name} targets {name} for Mass destruction`, killerFirst("mass driver")),
		newRule("microwave", `\*{name} is vaporized by {name}'s Microwave beam`, killedFirst("microwave")),
		newRule("napalm", `\*{name}'s Napalm burns {name} beyond recognition`, killerFirst("napalm")),
		newRule("plasma", `\*{name} pulverizes {name} with Plasma power`, killerFirst("plasma")),
		newRule("fusion", `\*{name} disintigrates {name}'s hull with the fusion`, killerFirst("fusion")),
		newRule("omega", `\*{name}'s Omega peels off {name}'s shields`, killerFirst("omega")),
		newRule("flare", `\*{name}'s Flare ignites {name}'s fuel leak`, killerFirst("flare")),
		newRule("concussion", `\*{name} takes a pounding from {name}'s Concussion`, killedFirst("concussion")),
		newRule("frag", `\*{name} catches shrapnel from {name}'s Frag`, killedFirst("frag")),
		newRule("homer", `\*{name}'s Homer swoops down on {name} for the kill`, killerFirst("homer")),
		newRule("guided", `\*{name}'s Guided hunts down {name}`, killerFirst("guided")),
		newRule("napalm rocket", `\*{name} is incinerated by {name}'s Napalm Rocket`, killedFirst("napalm rocket")),
		newRule("smart", `\*{name} can't shake {name}'s Smart missile`, killedFirst("smart")),
		newRule("cyclone", `\*{name}'s Cyclone overwhelms {name}'s defenses`, killerFirst("cyclone")),
		newRule("mega", `\*{name}'s Mega reduces {name} to smoldering scrap`, killerFirst("mega")),
	}
}

func playerTeam(kind Kind) func([]string) Event {
	return func(m []string) Event {
		return event(kind, PlayerTeamData{Player: m[0], Team: m[1]})
	}
}

func objectiveRules() []Rule {
	return []Rule{
		newRule("hyperorb", `\*(.*) Has The HyperOrb!!!`, playerOnly(EventHyperOrb)),
		newRule("hyperorb lost", `\*(.*) Lost The HyperOrb!!!`, playerOnly(EventHyperOrbLost)),
		newRule("hyperorb score", `\*(.*) racks up another ([2-5]) points!`, func(m []string) Event {
			return event(EventHyperOrbScore, PointsData{Player: m[0], Points: toInt(m[1])})
		}),

		newRule("flag pickup", `\*(.*) \((.*)\) (?:picks up the|finds the) (.*) Flag(?: among some debris!)?`, func(m []string) Event {
			return event(EventFlagPickup, FlagData{Player: m[0], Team: m[1], Flag: m[2]})
		}),
		// Larger captures first; the one-flag shape matches them too.
		newRule("flag score three", `\*(.*) \((.*)\) captures the (.*), (.*) and (.*) Flags!`, func(m []string) Event {
			return event(EventFlagScore, FlagScoreData{Player: m[0], Team: m[1], Flags: []string{m[2], m[3], m[4]}})
		}),
		newRule("flag score two", `\*(.*) \((.*)\) captures the (.*) and (.*) Flags!`, func(m []string) Event {
			return event(EventFlagScore, FlagScoreData{Player: m[0], Team: m[1], Flags: []string{m[2], m[3]}})
		}),
		newRule("flag score", `\*(.*) \((.*)\) captures the (.*) Flag!`, func(m []string) Event {
			return event(EventFlagScore, FlagScoreData{Player: m[0], Team: m[1], Flags: []string{m[2]}})
		}),
		newRule("flag return", `\*(.*) \((.*)\) returns the .* Flag!`, playerTeam(EventFlagReturn)),

		newRule("first hat trick", `\*(.*) is the first to get a Hat Trick!!!`, func(m []string) Event {
			return event(EventHatTrick, HatTrickData{Player: m[0], First: true})
		}),
		newRule("hat trick", `\*(.*) has achieved a Hat Trick!!!`, func(m []string) Event {
			return event(EventHatTrick, HatTrickData{Player: m[0]})
		}),

		newRule("monsterball point", `\*(.*) \((.*)\) knocks the ball in for a point!`, playerTeam(EventMonsterballPoint)),
		newRule("monsterball blunder", `\*(.*) accidently scores a point for the (.*) team!`, playerTeam(EventMonsterballBlunder)),

		newRule("entropy base", `\*(.*) Took Over A (.*) Team's (.*) Room`, func(m []string) Event {
			return event(EventEntropyBase, EntropyBaseData{Player: m[0], Team: m[1], Room: m[2]})
		}),
	}
}

func statRules() []Rule {
	return []Rule{
		newRule("revenge", `\*(.*) got revenge on (.*)!`, func(m []string) Event {
			return event(EventStatRevenge, KillerKilledData{Killer: m[0], Killed: m[1]})
		}),
		newRule("kill streak", `\*That's ([1-9][0-9]*) kills in a row for (.*)!`, func(m []string) Event {
			return event(EventStatKillStreak, StreakData{Player: m[1], Count: toInt(m[0])})
		}),
		newRule("death streak", `\*That's ([1-9][0-9]*) deaths in a row for (.*)!`, func(m []string) Event {
			return event(EventStatDeathStreak, StreakData{Player: m[1], Count: toInt(m[0])})
		}),
		newRule("efficiency", `\*(.*) has an (?:awesome )?efficiency of ([1-9][0-9]*\.[0-9]{2})(?:!!)?`, func(m []string) Event {
			return event(EventStatEfficiency, EfficiencyData{Player: m[0], Efficiency: toFloat(m[1])})
		}),
		newRule("repeat kills", `\*(.*) has killed (.*) ([1-9][0-9]*) times!`, func(m []string) Event {
			return event(EventStatKills, StatKillsData{Killer: m[0], Killed: m[1], Count: toInt(m[2])})
		}),
		newRule("first kill interval", `\*It's (.*)'s first kill in ([1-9][0-9]*):([0-5][0-9]) minutes?`, func(m []string) Event {
			return event(EventStatKillInterval, IntervalData{Player: m[0], Seconds: clockSeconds("", m[1], m[2])})
		}),
		newRule("death interval", `\*(.*) lasted ([1-9][0-9]*):([0-5][0-9]) minutes? without being killed!`, func(m []string) Event {
			return event(EventStatDeathInterval, IntervalData{Player: m[0], Seconds: clockSeconds("", m[1], m[2])})
		}),
	}
}
