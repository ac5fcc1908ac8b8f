package contract

type Button struct {
	Text string
	Data string
}

// Reply is an outgoing text message or an edit of the message a button
// belongs to.
type Reply struct {
	Text string
	HTML bool

	// Buttons are rendered as an inline keyboard, one row per slice.
	Buttons [][]Button

	// Keyboard replaces the user's keyboard with one-time choices.
	Keyboard [][]string

	// RemoveKeyboard hides a keyboard sent by a previous Reply.
	RemoveKeyboard bool
}

func Text(text string) *Reply {
	return &Reply{Text: text}
}

func HTML(text string) *Reply {
	return &Reply{Text: text, HTML: true}
}

// BotName is how the bot introduces itself.
const BotName = "ASper21_ExcelBot"
