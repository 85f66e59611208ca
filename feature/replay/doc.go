// Package replay summarizes unpacked battle replays.
//
// A replay carries a meta.json record, parsed leniently into Meta, and one
// Detail per player. Details convert to PlayerData through the registry;
// the player's region is derived from the account id. Release reduces the
// client version to major.minor.
package replay
