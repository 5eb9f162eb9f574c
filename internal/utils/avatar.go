package utils

// Emojis proposés aux participants lors de l'auto-identification
var AvatarEmojis = []string{"💪", "🏃", "🔥", "⚡", "🎯", "🏋️", "🚴", "🧘", "🥊", "🏊"}

const defaultAvatarEmoji = "💪"

// NormalizeAvatarEmoji retourne l'emoji choisi s'il fait partie de la
// palette, sinon l'avatar par défaut (les clients libres envoient n'importe quoi)
func NormalizeAvatarEmoji(emoji string) string {
	for _, e := range AvatarEmojis {
		if e == emoji {
			return emoji
		}
	}
	return defaultAvatarEmoji
}
