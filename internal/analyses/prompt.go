package analyses

import "fmt"

// promptTemplate is the active rubric. It is part of the contract with the
// model: graders compare responses across deployments, so treat the wording
// as frozen.
const promptTemplate = `You are an assessment design expert. Analyze the following assignment prompt for AI vulnerability: how easily could a student produce a passing submission using a generative AI tool?

Score each criterion from 1 (very vulnerable) to 5 (very resistant) and explain each score in one or two sentences:

1. **AI Solvability** - can a language model produce a credible answer directly from the prompt?
2. **Personal Context** - does the task require the student's own experiences, data, or local context?
3. **Process Visibility** - does the task require visible intermediate work (drafts, logs, oral defense)?
4. **Source Grounding** - does the task depend on specific course materials an AI would not have?
5. **Higher-Order Thinking** - does the task demand synthesis, critique, or creation rather than recall?
6. **Output Originality** - would two AI-generated submissions be suspiciously similar?
7. **Verifiability** - can the grader check the work against something the AI cannot fake?

Then rate the overall risk as Low, Medium, High, or Critical, and provide 3 actionable improvements to make the assignment more AI-resistant.

Format the entire answer as Markdown with a heading per criterion.

Assignment prompt:

%s`

// BuildPrompt substitutes the assignment text into the rubric template.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}
