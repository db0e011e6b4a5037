// Package classify maps RuneLite screenshot filenames to labels.
//
// Classification is pure: it never touches the filesystem or network and
// never fails. Names RuneLite writes for level-ups ("Mining(99).png"),
// quests ("Quest(Dragon Slayer).png"), Barrows chests ("Barrows(4).png"),
// and pet drops ("Pet 2019-01-01_12-00-00.png") get their own category;
// everything else is Misc.
package classify
