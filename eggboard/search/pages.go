package search

import "github.com/diamondburned/eggboard/eggboard"

// DefaultPages is the site's page table.
var DefaultPages = []eggboard.Page{
	// Main pages
	{Title: "Movies", URL: "movies.html", Keywords: "film cinema movie mcu"},
	{Title: "TV", URL: "tv.html", Keywords: "show tv series streaming disney+ special presentation netflix abc"},
	{Title: "Chronology", URL: "chronology.html", Keywords: "timeline order chronological watch order"},
	{Title: "Characters", URL: "characters.html", Keywords: "heroes villains profiles"},
	{Title: "Easter Eggs & Theories", URL: "/eastereggs", Keywords: "hidden details theories easter egg community archive"},
	{Title: "Filming Locations", URL: "/locations", Keywords: "filming locations sets where community archive"},
	{Title: "Connections", URL: "/connections", Keywords: "connections callbacks foreshadowing related community archive"},

	// Movies
	{Title: "Iron Man (2008)", URL: "movies.html#iron-man", Keywords: "tony stark iron man arc reactor obadiah stane james rhodes happy hogan pepper potts"},
	{Title: "Captain America: The First Avenger (2011)", URL: "movies.html#captain-america-first-avenger", Keywords: "steve rogers captain america red skull peggy carter bucky barnes hydra"},
	{Title: "The Avengers (2012)", URL: "movies.html#avengers", Keywords: "avengers assemble loki thor captain america steve rogers iron man tony stark hawkeye clint barton black widow natasha romanoff the hulk bruce banner nick fury phil coulson maria hill"},

	// TV
	{Title: "WandaVision", URL: "tv.html#wandavision", Keywords: "wanda vision westview sitcom agatha harkness billy tommy pietro"},
	{Title: "Loki", URL: "tv.html#loki", Keywords: "tva variants multiverse sylvie mobius"},
	{Title: "Hawkeye", URL: "tv.html#hawkeye", Keywords: "clint barton kate bishop yelena belova kingpin wilson fisk echo maya lopez"},

	// Characters
	{Title: "Tony Stark / Iron Man", URL: "characters/iron-man.html", Keywords: "tony stark iron man"},
	{Title: "Steve Rogers / Captain America", URL: "characters.html", Keywords: "steve rogers captain america"},
	{Title: "Natasha Romanoff / Black Widow", URL: "characters.html", Keywords: "natasha romanoff black widow"},

	// Coming soon
	{Title: "Daredevil: Born Again, Season 2", URL: "tv.html#daredevil-born-again-season-2", Keywords: "daredevil matt murdock born again season 2"},
	{Title: "X-Men '97, Season 2", URL: "tv.html#xmen-97-season-2", Keywords: "xmen x-men 97 season 2 mutants"},
	{Title: "Your Friendly Neighborhood Spider-Man, Season 2", URL: "tv.html#friendly-neighborhood-spiderman-season-2", Keywords: "spiderman spider-man peter parker season 2 animated"},
	{Title: "VisionQuest", URL: "tv.html#visionquest", Keywords: "vision white vision wanda sequel"},
}
