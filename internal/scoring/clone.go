package scoring

// Clone returns a deep copy of the match. The engine only ever mutates clones,
// so a failed operation leaves the caller's value untouched.
func (m *Match) Clone() *Match {
	c := *m
	for i := range m.Teams {
		c.Teams[i].Players = append([]Player(nil), m.Teams[i].Players...)
	}
	for i := range m.Innings {
		c.Innings[i] = m.Innings[i].clone()
	}
	if m.Result != nil {
		r := *m.Result
		c.Result = &r
	}
	if m.Toss != nil {
		t := *m.Toss
		c.Toss = &t
	}
	if m.PlayingXI != nil {
		c.PlayingXI = make(map[string][]string, len(m.PlayingXI))
		for team, ids := range m.PlayingXI {
			c.PlayingXI[team] = append([]string(nil), ids...)
		}
	}
	return &c
}

func (in Innings) clone() Innings {
	c := in
	c.Overs = make([]Over, len(in.Overs))
	for i, o := range in.Overs {
		o.Balls = append([]Ball(nil), o.Balls...)
		c.Overs[i] = o
	}
	c.Batting = make([]BattingEntry, len(in.Batting))
	for i, b := range in.Batting {
		if b.Dismissal != nil {
			d := *b.Dismissal
			b.Dismissal = &d
		}
		c.Batting[i] = b
	}
	c.Bowling = append([]BowlingEntry(nil), in.Bowling...)
	c.FallOfWickets = append([]FallOfWicket(nil), in.FallOfWickets...)
	return c
}
