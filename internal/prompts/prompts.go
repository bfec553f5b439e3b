// Package prompts assembles generation requests: system instruction sets,
// user content with optional context blocks, and the per-chunk narrative
// arc directives that keep independently generated chunks coherent.
package prompts

// RestructurePrompt is the system instruction set for full-transcript and
// chunk restructuring requests.
const RestructurePrompt = `You are transforming a messy video transcript into clean, structured prose for a kinetic typography reader. Return a JSON object with this exact format:

{
  "sections": [
    {
      "title": "Section Title",
      "recap": "One sentence summary of this section.",
      "thoughts": [
        {
          "text": "A clean, complete thought. One to three sentences.",
          "emphasis": ["keyWord1", "keyWord2"],
          "mode": "flow",
          "energy": "explanation",
          "complexity": 0.4
        }
      ]
    }
  ],
  "takeaways": [
    "Key takeaway 1",
    "Key takeaway 2",
    "Key takeaway 3"
  ]
}

Rules for "text":
- Remove ALL filler words: um, uh, like (as filler), you know, basically, sort of, kind of, I mean, right?, so basically
- Remove false starts, repetitions, and verbal tics
- Restructure rambling sentences into clear, concise prose
- Each thought should be 1-3 sentences, a complete idea
- Preserve the speaker's meaning and personality, just make it crisp
- Never add information that wasn't in the original

Rules for "emphasis":
- 1-3 words per thought that carry the most semantic weight
- These will be visually highlighted

Rules for "mode":
- "flow" is the default, for prose and explanations
- "impact" is for dramatic moments, key insights, short punchy statements (3-8 words)
- "stack" is for lists, enumerations, step-by-step content

Rules for "energy":
- "calm_intro" for openings, setting context
- "explanation" for teaching, explaining concepts
- "building_tension" for leading up to a key point
- "climax" for the key insight or dramatic moment
- "enumeration" for listing items
- "contrast" for comparing ideas
- "emotional" for personal stories, feelings
- "question" for rhetorical or real questions
- "resolution" for wrapping up, concluding

Rules for "complexity":
- 0.0-1.0 score
- Higher for technical jargon, dense ideas, multi-clause sentences
- Lower for simple statements, transitions

Rules for narrative arc:
- Energy states should follow natural arcs: calm_intro at openings, building_tension before climax, resolution at section ends
- Limit climax to ~10% of thoughts; overuse dilutes impact
- Every climax should be preceded by at least one building_tension thought

Rules for mode-energy alignment:
- impact mode pairs with climax or building_tension (short punchy statements only)
- stack mode pairs with enumeration
- Never use impact for explanation or calm_intro; those need room to breathe in flow mode

Rules for emphasis specificity:
- Choose words with unique semantic weight: proper nouns, numbers, technical terms, emotionally charged words
- Never emphasize articles, prepositions, or common verbs (the, a, is, was, have, do, get, make)
- 1-3 emphasis words per thought maximum

Rules for mathematical content:
- When the transcript contains spoken math (e.g. "x squared plus 2x equals zero"), convert it to LaTeX notation wrapped in dollar signs: $x^2 + 2x = 0$
- Use single $ for inline math within sentences
- Use double $$ for standalone equations that deserve their own line
- Common patterns: "x squared" becomes $x^2$, "square root of x" becomes $\sqrt{x}$, "integral from a to b" becomes $\int_a^b$, "f of x" becomes $f(x)$, "sum from i equals 1 to n" becomes $\sum_{i=1}^{n}$
- Preserve the surrounding prose; only the math notation itself goes inside dollar signs
- If unsure whether something is math, leave it as prose

Rules for "recap":
- One sentence summarizing the section's key point
- Shown at section breaks as a comprehension checkpoint

Rules for "takeaways":
- 3-5 key points from the entire transcript
- Shown at the end as a summary card`

// ChapterRestructurePrompt is the narrower instruction set for a single
// chapter: the chapter already is the section, so there is no section
// splitting and no takeaways extraction.
const ChapterRestructurePrompt = `You are transforming a messy video transcript excerpt into clean, structured prose for a kinetic typography reader. This excerpt is from a single chapter of the video. Return a JSON object with this exact format:

{
  "thoughts": [
    {
      "text": "A clean, complete thought. One to three sentences.",
      "emphasis": ["keyWord1", "keyWord2"],
      "mode": "flow",
      "energy": "explanation",
      "complexity": 0.4
    }
  ],
  "recap": "One sentence summary of this chapter."
}

Rules for "text":
- Remove ALL filler words: um, uh, like (as filler), you know, basically, sort of, kind of, I mean, right?, so basically
- Remove false starts, repetitions, and verbal tics
- Restructure rambling sentences into clear, concise prose
- Each thought should be 1-3 sentences, a complete idea
- Preserve the speaker's meaning and personality, just make it crisp
- Never add information that wasn't in the original

Rules for "emphasis":
- 1-3 words per thought that carry the most semantic weight
- These will be visually highlighted

Rules for "mode":
- "flow" is the default, for prose and explanations
- "impact" is for dramatic moments, key insights, short punchy statements (3-8 words)
- "stack" is for lists, enumerations, step-by-step content

Rules for "energy":
- "calm_intro" for openings, setting context
- "explanation" for teaching, explaining concepts
- "building_tension" for leading up to a key point
- "climax" for the key insight or dramatic moment
- "enumeration" for listing items
- "contrast" for comparing ideas
- "emotional" for personal stories, feelings
- "question" for rhetorical or real questions
- "resolution" for wrapping up, concluding

Rules for "complexity":
- 0.0-1.0 score
- Higher for technical jargon, dense ideas, multi-clause sentences
- Lower for simple statements, transitions

Rules for narrative arc:
- Energy states should follow natural arcs within this chapter
- Limit climax to ~10% of thoughts
- Every climax should be preceded by at least one building_tension thought

Rules for mode-energy alignment:
- impact mode pairs with climax or building_tension (short punchy statements only)
- stack mode pairs with enumeration
- Never use impact for explanation or calm_intro

Rules for emphasis specificity:
- Choose words with unique semantic weight: proper nouns, numbers, technical terms, emotionally charged words
- Never emphasize articles, prepositions, or common verbs (the, a, is, was, have, do, get, make)
- 1-3 emphasis words per thought maximum

Rules for mathematical content:
- When the transcript contains spoken math (e.g. "x squared plus 2x equals zero"), convert it to LaTeX notation wrapped in dollar signs: $x^2 + 2x = 0$
- Use single $ for inline math within sentences
- Use double $$ for standalone equations that deserve their own line
- Preserve the surrounding prose; only the math notation itself goes inside dollar signs
- If unsure whether something is math, leave it as prose

Rules for "recap":
- One sentence summarizing this chapter's key point`

// ArcAnalysisPrompt asks for a single JSON object describing the
// narrative shape of a condensed transcript sample.
const ArcAnalysisPrompt = `You are analyzing the narrative structure of a video transcript. The text below is a condensed sample of the full transcript, taken uniformly from start to end. Return a single JSON object with this exact format:

{
  "arc_shape": "rise",
  "staging_end_pct": 0.15,
  "tension_start_pct": 0.5,
  "climax_zone_start_pct": 0.7,
  "climax_zone_end_pct": 0.9,
  "resolution_start_pct": 0.9
}

Rules for "arc_shape", pick exactly one:
- "rise" for content that builds steadily toward a late payoff
- "fall" for content that opens with its biggest point and unwinds
- "fall_then_rise" for an early hook, a quieter middle, and a late payoff
- "rise_then_fall" for a mid-video peak followed by extended wind-down
- "uniform" for evenly paced content with no dominant peak

Rules for the percentage fields:
- Each is a fraction of the full transcript length in [0, 1]
- staging_end_pct: where scene-setting ends and development begins
- tension_start_pct: where the content starts building toward its peak
- climax_zone_start_pct / climax_zone_end_pct: the window holding the most important insight
- resolution_start_pct: where wrap-up begins
- The fields must be non-decreasing in the order listed

Return ONLY the JSON object, no other text.`
