package imposter

// DefaultCyclists is the built-in rider set used to seed an empty catalog
// and to back the fallback puzzle.
func DefaultCyclists() []Cyclist {
	return []Cyclist{
		{ID: "c1", Name: "Mark Cavendish", ImageURL: "https://cdn.cyclingimposter.com/riders/cavendish.jpg", Country: "United Kingdom", Team: "Astana Qazaqstan", Status: StatusRetired, LastUpdated: "2023-10-24"},
		{ID: "c2", Name: "Peter Sagan", ImageURL: "https://cdn.cyclingimposter.com/riders/sagan.jpg", Country: "Slovakia", Team: "TotalEnergies", Status: StatusRetired, LastUpdated: "2023-10-24"},
		{ID: "c3", Name: "Eddy Merckx", ImageURL: "https://cdn.cyclingimposter.com/riders/merckx.jpg", Country: "Belgium", Team: "Molteni", Status: StatusRetired, LastUpdated: "2023-09-12"},
		{ID: "c4", Name: "Bernard Hinault", ImageURL: "https://cdn.cyclingimposter.com/riders/hinault.jpg", Country: "France", Team: "La Vie Claire", Status: StatusRetired, LastUpdated: "2023-08-05"},
		{ID: "c5", Name: "Chris Froome", ImageURL: "https://cdn.cyclingimposter.com/riders/froome.jpg", Country: "United Kingdom", Team: "Israel-Premier Tech", Status: StatusActive, LastUpdated: "2023-10-24"},
		{ID: "c6", Name: "Tadej Pogačar", ImageURL: "https://cdn.cyclingimposter.com/riders/pogacar.jpg", Country: "Slovenia", Team: "UAE Team Emirates", Status: StatusActive, LastUpdated: "2023-10-24"},
		{ID: "c7", Name: "Lance Armstrong", ImageURL: "https://cdn.cyclingimposter.com/riders/armstrong.jpg", Country: "USA", Team: "US Postal", Status: StatusRetired, LastUpdated: "2023-01-20"},
		{ID: "c8", Name: "Miguel Induráin", ImageURL: "https://cdn.cyclingimposter.com/riders/indurain.jpg", Country: "Spain", Team: "Banesto", Status: StatusRetired, LastUpdated: "2022-12-15"},
	}
}

// DefaultPuzzle is the fallback quiz served whenever no puzzle is scheduled
// for today, guaranteeing the game is always playable.
func DefaultPuzzle() Puzzle {
	return Puzzle{
		ID:        "q1",
		Date:      "2023-10-25",
		Statement: "10+ Stage Wins TDF",
		Slots: []Slot{
			{CyclistID: "c1", IsImposter: false},
			{CyclistID: "c2", IsImposter: false},
			{CyclistID: "c3", IsImposter: false},
			{CyclistID: "c4", IsImposter: false},
			{CyclistID: "c5", IsImposter: true},
			{CyclistID: "c6", IsImposter: false},
			{CyclistID: "c7", IsImposter: false},
			{CyclistID: "c8", IsImposter: false},
		},
	}
}
