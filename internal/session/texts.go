package session

import (
	"fmt"
	"strings"

	"github.com/edubridge/edubridge/internal/catalog"
)

const helpMessage = `
EDUBRIDGE HELP CENTER
---------------------
COMMANDS:
*123# - Main Menu
*5#  - Attachment Menu
*2#  - Previous Lesson
0 or *0# - This Help Guide
1-N - Select Subject
"Next" - Continue lesson
"Menu" - Return to subjects

HOW TO USE:
1. Select a subject by number.
2. Ask any question in chat.
3. Use voice button for audio.
4. "Attachment Menu" has Text, Links, Voice, and Images.

EduBridge works on low-signal 2G/3G networks.
`

// ussdMenu renders the numbered main menu for the active stage, or the
// stage picker when no stage has been chosen yet.
func ussdMenu(cat *catalog.Catalog, stage *catalog.Stage) string {
	var b strings.Builder
	b.WriteString("\nWELCOME TO EDUBRIDGE\nReply with number:\n")
	if stage == nil {
		for i, st := range cat.Stages() {
			fmt.Fprintf(&b, "%d. %s\n", i+1, st.Title)
		}
	} else {
		for i, sub := range cat.SubjectsForStage(stage.ID) {
			fmt.Fprintf(&b, "%d. %s\n", i+1, sub.Title)
		}
	}
	b.WriteString(`0. Help

---------------------
USSD HELP CENTER
---------------------
COMMANDS:
*123# - Main Menu
*5#  - Attachment Menu
*2#  - Previous Lesson
0 or *0# - Help Guide
1-N - Select Subject
"Next" - Next lesson
"Menu" - Exit course

HOW TO USE:
1. Reply with a number.
2. Voice/Images in *5# menu.
`)
	return b.String()
}

func quizCorrectFeedback() string {
	return "✅ Correct! Well done."
}

func quizIncorrectFeedback(correct string) string {
	return fmt.Sprintf("❌ Not quite. The correct answer is: %s", correct)
}
