/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"github.com/praveenksekaran/Agents/agents/promptbuilder"
)

// DefaultCriterion grades a paint-agent reply for a homeowner.
const DefaultCriterion = "The response gives the homeowner correct paint quantities and costs for " +
	"the rooms described, names the products it used, and stays clear and concise."

const rubric = `SCORING RUBRIC:
- Score 1.0 (Perfect): The response fully meets the criterion. Differences in wording, ordering or formatting that do not change the meaning must not be penalized. Suggestions MUST be an empty array.
- Score 0.75-0.99 (High Quality): The response meets the criterion with minor gaps. Use 0.90-0.99 for presentation issues and 0.75-0.89 for small omissions. Suggestions MUST name the minor improvements.
- Score 0.50-0.74 (Adequate): The response partially meets the criterion with notable gaps, such as a missing room or an unexplained total. Suggestions MUST address each gap.
- Score 0.25-0.49 (Poor): The response has significant problems, such as wrong quantities or costs, but some correct elements.
- Score 0.0-0.24 (Failing): The response does not address the request or its figures are wrong throughout.`

const outputHead = `<output_format>
Return your judgement as a JSON object with this structure:
{
  "mode": "`

const outputTail = `",
  "score": 0.0-1.0,
  "reasoning": "explanation of the score for this criterion",
  "suggestions": ["improvement1", "improvement2", ...]
}

Focus suggestions on specific missing or incorrect elements rather than general advice.
</output_format>`

var goldenPrompt = promptbuilder.MustNewPrompt(`<task>
You are evaluating the reply of a paint estimation assistant against a reference answer.
Score the reply based on the specific criterion provided.
</task>

{{golden_answer}}

{{actual_response}}

{{criterion}}

<instructions>
1. Compare the actual response to the golden answer. Treat paint quantities and costs as equal when they agree to the nearest cent or tenth of a liter.
2. Evaluate specifically for the given criterion.
3. Provide a score from 0.0 to 1.0 using this rubric:

` + rubric + `

4. Explain your reasoning and provide suggestions following the rubric.
</instructions>

` + outputHead + "golden" + outputTail)

var standalonePrompt = promptbuilder.MustNewPrompt(`<task>
You are evaluating the reply of a paint estimation assistant.
There is no reference answer. Score the reply on its own against the criterion provided.
</task>

{{response}}

{{criterion}}

<instructions>
1. Check that the reply answers the request and that its arithmetic is internally consistent.
2. Evaluate specifically for the given criterion.
3. Provide a score from 0.0 to 1.0 using this rubric:

` + rubric + `

4. Explain your reasoning and provide suggestions following the rubric.
</instructions>

` + outputHead + "standalone" + outputTail)

type goldenAnswer struct {
	XMLName struct{} `xml:"golden_answer"`
	Content string   `xml:",chardata"`
}

type actualResponse struct {
	XMLName struct{} `xml:"actual_response"`
	Content string   `xml:",chardata"`
}

type response struct {
	XMLName struct{} `xml:"response"`
	Content string   `xml:",chardata"`
}

type criterion struct {
	XMLName struct{} `xml:"criterion"`
	Content string   `xml:",chardata"`
}

// Prompt renders the judge prompt for the request's mode. Answers are
// XML-escaped so a response cannot close its own element.
func (r *Request) Prompt() (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	var (
		p   *promptbuilder.Prompt
		err error
	)
	switch r.Mode {
	case GoldenMode:
		p, err = goldenPrompt.BindXML("golden_answer", goldenAnswer{Content: r.ReferenceAnswer})
		if err != nil {
			return "", err
		}
		p, err = p.BindXML("actual_response", actualResponse{Content: r.ActualAnswer})
	default:
		p, err = standalonePrompt.BindXML("response", response{Content: r.ActualAnswer})
	}
	if err != nil {
		return "", err
	}
	if p, err = p.BindXML("criterion", criterion{Content: r.Criterion}); err != nil {
		return "", err
	}
	return p.Build()
}
