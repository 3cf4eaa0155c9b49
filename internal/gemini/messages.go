package gemini

import (
	"encoding/json"
	"strings"

	"google.golang.org/genai"

	"github.com/vmunix/reelpick/internal/recommend"
)

// previousChunkSize bounds how many prior recommendations go into a single
// model-role message when replaying history.
const previousChunkSize = 20

// buildMessages assembles the conversation for a generation request. Prior
// recommendations are replayed as model turns so the model avoids repeating
// them, with user turns asking for more in between. Clicked titles are passed
// as a final user hint about taste.
func buildMessages(req recommend.Request) []*genai.Content {
	contents := []*genai.Content{
		genai.NewContentFromText("User query: "+req.Query, genai.RoleUser),
	}

	for i := 0; i < len(req.Previous); i += previousChunkSize {
		end := min(i+previousChunkSize, len(req.Previous))
		chunk, err := json.Marshal(req.Previous[i:end])
		if err != nil {
			continue
		}
		contents = append(contents,
			genai.NewContentFromText(string(chunk), genai.RoleModel),
			genai.NewContentFromText("Based on my query, generate more recommendations that are different from the ones you already gave me.", genai.RoleUser),
		)
	}

	if len(req.Clicked) > 0 {
		contents = append(contents, genai.NewContentFromText(
			"I clicked on these movies, which tells you about my taste: "+strings.Join(req.Clicked, ", ")+". Factor that in.",
			genai.RoleUser,
		))
	}

	return contents
}
