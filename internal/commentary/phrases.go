package commentary

// Category selects the phrase pool for a delivery.
type Category string

const (
	CategoryDot         Category = "dot"
	CategorySingle      Category = "single"
	CategoryDouble      Category = "double"
	CategoryTriple      Category = "triple"
	CategoryFour        Category = "four"
	CategorySix         Category = "six"
	CategoryRuns        Category = "runs"
	CategoryWide        Category = "wide"
	CategoryNoBall      Category = "no-ball"
	CategoryBye         Category = "bye"
	CategoryBowled      Category = "wicket-bowled"
	CategoryCaught      Category = "wicket-caught"
	CategoryLBW         Category = "wicket-lbw"
	CategoryRunOut      Category = "wicket-run-out"
	CategoryStumped     Category = "wicket-stumped"
	CategoryHitWicket   Category = "wicket-hit-wicket"
	CategoryWicketOther Category = "wicket-other"
)

var pools = map[Category][]string{
	CategoryDot: {
		"dot ball, defended solidly back down the pitch.",
		"no run, beaten outside off stump.",
		"left alone outside off, nothing doing.",
		"straight to the fielder in the ring, no run.",
		"good length, played with a straight bat. Dot.",
	},
	CategorySingle: {
		"worked away for a single.",
		"pushed into the gap, they jog through for one.",
		"tucked off the pads for a quick single.",
		"dropped at their feet and they scamper one.",
	},
	CategoryDouble: {
		"driven into the deep, they come back for two.",
		"placed between the fielders, two runs.",
		"good running between the wickets, a couple taken.",
	},
	CategoryTriple: {
		"chased down just inside the rope, three runs.",
		"into the outfield, excellent running gets them three.",
	},
	CategoryFour: {
		"FOUR! Cracking cover drive, races to the boundary.",
		"FOUR! Pulled away in front of square.",
		"FOUR! Edged and it flies past the keeper.",
		"FOUR! Timed to perfection, no need to run.",
	},
	CategorySix: {
		"SIX! That's gone all the way into the stands.",
		"SIX! Launched over long-on.",
		"SIX! Clean strike, huge hit over midwicket.",
		"SIX! Dispatched over the bowler's head.",
	},
	CategoryRuns: {
		"runs scored as the fielders scramble.",
		"chaos in the field and the batters keep running.",
	},
	CategoryWide: {
		"wide, strays down the leg side.",
		"wide called, too far outside off stump.",
		"that's a wide, the bowler loses the line.",
	},
	CategoryNoBall: {
		"no ball! Overstepped, free hit coming up.",
		"no ball called for height.",
		"no ball, the front foot is over the line.",
	},
	CategoryBye: {
		"byes, it beats everyone including the keeper.",
		"leg byes, off the pad and they run.",
		"extras as the ball runs away to fine leg.",
	},
	CategoryBowled: {
		"OUT! Bowled him! The stumps are rattled.",
		"OUT! Through the gate and the off stump is knocked back.",
		"OUT! Clean bowled, missed a straight one.",
	},
	CategoryCaught: {
		"OUT! Caught! Straight down the fielder's throat.",
		"OUT! Edged and taken behind.",
		"OUT! Skied and held safely in the deep.",
	},
	CategoryLBW: {
		"OUT! LBW, trapped plumb in front.",
		"OUT! Given leg before, that was hitting middle.",
	},
	CategoryRunOut: {
		"OUT! Run out! Direct hit and they are well short.",
		"OUT! Run out, a terrible mix-up in the middle.",
	},
	CategoryStumped: {
		"OUT! Stumped! Lightning work from the keeper.",
		"OUT! Stumped, dragged the back foot out of the crease.",
	},
	CategoryHitWicket: {
		"OUT! Hit wicket, trod on the stumps going back.",
	},
	CategoryWicketOther: {
		"OUT! The batter has to walk back.",
		"OUT! That's a wicket, the fielding side celebrates.",
	},
}
