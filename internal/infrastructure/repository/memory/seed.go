package memory

import "github.com/riskibarqy/fantasy-roster/internal/domain/player"

const LeagueIDLiga1Indonesia = "idn-liga-1-2025"

// SeedPlayers is the demo catalog served when no database is configured.
func SeedPlayers() []player.Player {
	p := func(id, teamID, name string, pos player.Position, price int64, points int, stats player.Stats) player.Player {
		return player.Player{
			ID:       id,
			LeagueID: LeagueIDLiga1Indonesia,
			TeamID:   teamID,
			Name:     name,
			Position: pos,
			Country:  "ID",
			Price:    price,
			Points:   points,
			Stats:    stats,
		}
	}

	return []player.Player{
		p("idn-gk-01", "idn-persija", "Andritany Ardhiyasa", player.PositionGoalkeeper, 55, 64, player.Stats{CleanSheets: 9, MinutesTotal: 1890}),
		p("idn-gk-02", "idn-persib", "Teja Paku Alam", player.PositionGoalkeeper, 50, 58, player.Stats{CleanSheets: 7, MinutesTotal: 1710}),
		p("idn-gk-03", "idn-baliutd", "Adilson Maringa", player.PositionGoalkeeper, 45, 41, player.Stats{CleanSheets: 4, MinutesTotal: 1260}),
		p("idn-def-01", "idn-persija", "Hansamu Yama", player.PositionDefender, 60, 72, player.Stats{Goals: 3, Assists: 1, CleanSheets: 8, MinutesTotal: 1800}),
		p("idn-def-02", "idn-persib", "Nick Kuipers", player.PositionDefender, 58, 69, player.Stats{Goals: 2, Assists: 2, CleanSheets: 7, MinutesTotal: 1755}),
		p("idn-def-03", "idn-persebaya", "Dusan Stevanovic", player.PositionDefender, 55, 60, player.Stats{Goals: 1, CleanSheets: 6, MinutesTotal: 1620}),
		p("idn-def-04", "idn-baliutd", "Ricky Fajrin", player.PositionDefender, 52, 55, player.Stats{Assists: 3, CleanSheets: 5, MinutesTotal: 1530}),
		p("idn-def-05", "idn-persija", "Rizky Ridho", player.PositionDefender, 50, 51, player.Stats{Goals: 1, CleanSheets: 6, MinutesTotal: 1440}),
		p("idn-def-06", "idn-persib", "Alberto Rodriguez", player.PositionDefender, 48, 44, player.Stats{CleanSheets: 4, MinutesTotal: 1170}),
		p("idn-def-07", "idn-persebaya", "Arief Catur", player.PositionDefender, 45, 38, player.Stats{Assists: 1, CleanSheets: 3, MinutesTotal: 990}),
		p("idn-mid-01", "idn-persija", "Maciej Gajos", player.PositionMidfielder, 85, 96, player.Stats{Goals: 7, Assists: 8, MinutesTotal: 1800}),
		p("idn-mid-02", "idn-persib", "Marc Klok", player.PositionMidfielder, 80, 91, player.Stats{Goals: 6, Assists: 7, MinutesTotal: 1770}),
		p("idn-mid-03", "idn-persebaya", "Bruno Moreira", player.PositionMidfielder, 75, 83, player.Stats{Goals: 5, Assists: 6, MinutesTotal: 1650}),
		p("idn-mid-04", "idn-baliutd", "Eber Bessa", player.PositionMidfielder, 70, 77, player.Stats{Goals: 4, Assists: 6, MinutesTotal: 1590}),
		p("idn-mid-05", "idn-persija", "Syahrian Abimanyu", player.PositionMidfielder, 65, 62, player.Stats{Goals: 2, Assists: 4, MinutesTotal: 1500}),
		p("idn-mid-06", "idn-persib", "Beckham Putra", player.PositionMidfielder, 60, 57, player.Stats{Goals: 3, Assists: 2, MinutesTotal: 1320}),
		p("idn-mid-07", "idn-baliutd", "Mohammed Rashid", player.PositionMidfielder, 55, 49, player.Stats{Goals: 1, Assists: 3, MinutesTotal: 1200}),
		p("idn-fwd-01", "idn-persija", "Gustavo Almeida", player.PositionForward, 95, 104, player.Stats{Goals: 12, Assists: 3, MinutesTotal: 1710}),
		p("idn-fwd-02", "idn-persib", "David da Silva", player.PositionForward, 90, 99, player.Stats{Goals: 11, Assists: 2, MinutesTotal: 1680}),
		p("idn-fwd-03", "idn-persebaya", "Paulo Victor", player.PositionForward, 80, 81, player.Stats{Goals: 8, Assists: 4, MinutesTotal: 1560}),
		p("idn-fwd-04", "idn-baliutd", "Ilija Spasojevic", player.PositionForward, 70, 66, player.Stats{Goals: 6, Assists: 1, MinutesTotal: 1290}),
		p("idn-fwd-05", "idn-persija", "Witan Sulaeman", player.PositionForward, 60, 52, player.Stats{Goals: 4, Assists: 2, MinutesTotal: 1110}),
	}
}
