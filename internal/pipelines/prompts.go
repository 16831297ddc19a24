package pipelines

import "fmt"

func titlesPrompt(topic, description string) string {
	return fmt.Sprintf(`Generate exactly 5 viral YouTube video titles based on the following details:

Title: %s
Description: %s

Output each title on a new line. Do not number the titles and do not add any commentary.`, topic, description)
}

func scriptPrompt(transcript, mode, tone, style string) string {
	return fmt.Sprintf(`You are a YouTube scriptwriter. Using the source material below, write a complete %s video script.

Requirements:
- Tone: %s
- Style: %s
- Write a strong hook in the first two sentences.
- Keep the pacing tight; no filler sections.
- Do not include timestamps, camera directions, or markdown formatting.
- Output only the script text.

Source material:
%s`, mode, tone, style, transcript)
}
