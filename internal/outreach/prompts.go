package outreach

const namesIntentSystemPrompt = `Extract PERSON NAMES and intent from a short diary entry.
Return STRICT JSON ONLY:
{ "people": string[], "intent": "share" | "apologize" | "none" }

Rules:
- "people": first names or name-like tokens you are confident are persons (e.g., "Shreya", "Alex").
- "share": entry celebrates/spent time/positive moment worth sharing.
- "apologize": entry indicates the user upset/hurt someone or wants to repair.
- "none": no clear outreach intent.
- Max 3 names. No extra text outside JSON.`

const conflictDetectionPrompt = `Analyze this journal entry for interpersonal conflicts and person names.

Journal entry: "%s"

Your job:
1) Detect if the journal entry involves:
   - a conflict (fight, argument, tension, breakup, disagreement, hurt feelings, upset with someone, etc.)
   - a positive/happy moment (hanging out with someone, doing something fun, having a good time)
2) Extract the name of the person mentioned (a proper noun that is likely a name; pick the most relevant if multiple).
3) Generate a short, informal message in the user's voice that fits the tone of the entry. The message should:
   - sound casual and friendly
   - not be robotic
   - reflect the vibe of the situation (warm/light if happy, soft/apologetic if conflict)
   - not include any questions (but can sound open-ended)
   - start with the person's name in a friendly way (e.g., "Hey", "Heyy", "Hey Rishika")

CRITICAL JSON SHAPES (return ONLY one of these):

If conflict:
{
  "hasConflict": true,
  "hasPositive": false,
  "personName": "Chirag",
  "conflictType": "argument",
  "message": "Hey Chirag. I'm sorry about what happened today and I think we should talk about it.."
}

If positive:
{
  "hasConflict": false,
  "hasPositive": true,
  "personName": "Rishika",
  "message": "Heyy Rishika, Today was fun! Let's hang out again soon!"
}

If neither:
{
  "hasConflict": false,
  "hasPositive": false
}

Guidelines:
- The "personName" should be a single, capitalized proper noun (e.g., "Rishika").
- "conflictType" should be a short label like "fight", "argument", "tension", "disagreement", "breakup".
- The message must match the mood: friendly and casual, never formal.
- Keep the tone light and natural; contractions and small jokes are fine.
- Do not include any text before or after the JSON.`
