package words

// DefaultList seeds a community dictionary on first install.
// All entries are already in canonical form.
var DefaultList = []string{
	"Acorn", "Airplane", "Anchor", "Apple", "Armchair", "Avocado",
	"Backpack", "Balloon", "Banana", "Beach", "Bicycle", "Bonfire",
	"Bridge", "Bulldozer", "Butterfly", "Cactus", "Camera", "Campfire",
	"Candle", "Castle", "Caterpillar", "Cloud", "Compass", "Crayon",
	"Crocodile", "Cupcake", "Dinosaur", "Dolphin", "Dragon", "Drum",
	"Eagle", "Elephant", "Envelope", "Eyeball", "Feather", "Firefly",
	"Flamingo", "Fountain", "Garden", "Ghost", "Giraffe", "Glacier",
	"Guitar", "Hammock", "Harbor", "Hedgehog", "Helicopter", "Honey",
	"Iceberg", "Igloo", "Island", "Jellyfish", "Jigsaw", "Kangaroo",
	"Kayak", "Kite", "Ladder", "Lantern", "Lighthouse", "Lobster",
	"Mailbox", "Meteor", "Mountain", "Mushroom", "Narwhal", "Nest",
	"Octopus", "Orchard", "Owl", "Paintbrush", "Parachute", "Peacock",
	"Penguin", "Piano", "Pinecone", "Pirate", "Pyramid", "Rainbow",
	"Robot", "Rocket", "Sailboat", "Sandcastle", "Scarecrow", "Seahorse",
	"Snowman", "Spaceship", "Squirrel", "Submarine", "Sunflower", "Tractor",
	"Treehouse", "Trombone", "Tulip", "Turtle", "Umbrella", "Unicorn",
	"Volcano", "Waterfall", "Windmill", "Zeppelin",
}
