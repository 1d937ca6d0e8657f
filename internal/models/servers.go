package models

import "strings"

// FFXIVServers lists every world a reviewer can claim to be from.
var FFXIVServers = []string{
	// NA - Aether
	"Adamantoise", "Cactuar", "Faerie", "Gilgamesh",
	"Jenova", "Midgardsormr", "Sargatanas", "Siren",
	// NA - Crystal
	"Balmung", "Brynhildr", "Coeurl", "Diabolos",
	"Goblin", "Malboro", "Mateus", "Zalera",
	// NA - Primal
	"Behemoth", "Excalibur", "Exodus", "Famfrit",
	"Hyperion", "Lamia", "Leviathan", "Ultros",
	// NA - Dynamis
	"Halicarnassus", "Maduin", "Marilith", "Seraph",
	"Cuchulainn", "Golem", "Kraken", "Rafflesia",
	// EU - Chaos
	"Cerberus", "Louisoix", "Moogle", "Omega",
	"Phantom", "Ragnarok", "Sagittarius", "Spriggan",
	// EU - Light
	"Alpha", "Lich", "Odin", "Phoenix",
	"Raiden", "Shiva", "Twintania", "Zodiark",
	// JP - Elemental
	"Aegis", "Atomos", "Carbuncle", "Garuda",
	"Gungnir", "Kujata", "Tonberry", "Typhon",
	// JP - Gaia
	"Alexander", "Bahamut", "Durandal", "Fenrir",
	"Ifrit", "Ridill", "Tiamat", "Ultima",
	// JP - Mana
	"Anima", "Asura", "Chocobo", "Hades",
	"Ixion", "Masamune", "Pandaemonium", "Titan",
	// JP - Meteor
	"Belias", "Mandragora", "Ramuh", "Shinryu",
	"Unicorn", "Valefor", "Yojimbo", "Zeromus",
	// OCE - Materia
	"Bismarck", "Ravana", "Sephirot", "Sophia", "Zurvan",
}

// IsValidServer reports whether name matches a known world, ignoring case.
func IsValidServer(name string) bool {
	for _, s := range FFXIVServers {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}
