package service

import (
	"fmt"

	"excelbot/cmd/internal/contract"
)

const (
	helpText = "📚 <b>" + contract.BotName + " Help</b>\n\n" +
		"<b>/upload</b> - Share a new note (PDF, Image, etc.)\n" +
		"<b>/browse</b> - Browse notes by subject\n" +
		"<b>/search [keyword]</b> - Search notes by title or subject\n" +
		"<b>/my_notes</b> - See and delete your own shared notes\n" +
		"<b>/cancel</b> - Stop the current upload process"

	askFileText       = "Please send the note file you want to share (PDF, image, or any document)."
	askTitleText      = "File received! Now, enter a title for this note."
	askSubjectText    = "Great! Now, select the subject for this note from the options below:"
	uploadCancelText  = "Upload cancelled."
	browsePromptText  = "Select a subject to browse:"
	backButtonText    = "🔙 Back to Subjects"
	noOwnNotesText    = "You haven't uploaded any notes yet. Use /upload to start sharing!"
	ownNotesHeader    = "📂 <b>Your Uploaded Notes:</b>\n\n"
	ownerDeletedText  = "✅ Note successfully deleted."
	adminDeletedText  = "✅ Note deleted by Admin."
	announcementTitle = "📢 <b>Announcement:</b>\n\n"
)

func welcomeText(mention string) string {
	return "Hi " + mention + "! Welcome to " + contract.BotName + ". 📚" +
		"\n\nYou can upload your notes or browse notes shared by others." +
		"\n\nCommands:" +
		"\n/upload - Share a new note" +
		"\n/browse - View available notes" +
		"\n/search - Find notes by keyword" +
		"\n/my_notes - Manage your uploads" +
		"\n/help - Show this help message"
}

// thankYouMessages is the pool a finished upload picks its confirmation from.
func thankYouMessages(subject string) []string {
	return []string{
		fmt.Sprintf("✅ Successfully shared! I hope you will get an A for %s! 🌟", subject),
		"✅ Successfully shared! Guess you are really smart huh? 😎",
		fmt.Sprintf("✅ Successfully shared! Thanks for helping others with %s! 📚", subject),
		"✅ Successfully shared! You're a lifesaver! 🚀",
		fmt.Sprintf("✅ Successfully shared! %s notes received. Keep up the great work! ✨", subject),
	}
}

func noteCaption(title, subject string) string {
	return fmt.Sprintf("Title: %s\nSubject: %s", title, subject)
}

func adminDashboardText(users, notes int64) string {
	return fmt.Sprintf("🕵️‍♂️ <b>Admin Dashboard</b>\n\n"+
		"👥 Total Users: %d\n"+
		"📄 Total Notes: %d\n\n"+
		"Commands:\n"+
		"/broadcast [message] - Send message to all users\n"+
		"/delete_note [id] - Force delete a note by ID", users, notes)
}

// subjectMenu lists every subject as a button, one per row.
func subjectMenu(text string) *contract.Reply {
	reply := contract.Text(text)
	for _, sub := range subjectNames() {
		reply.Buttons = append(reply.Buttons, []contract.Button{{Text: sub, Data: contract.SubjectData(sub)}})
	}
	return reply
}
