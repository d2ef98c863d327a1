package extract

const systemPrompt = `You are an AI language model tasked with:

1. **Entity Identification**:
   - Identify entities in the text labeled **only** as:
     - **disease**, **symptom**, **treatment**, **risk_factor**, **test**, **gene**, **biomarker**, **complication**, **prognosis**, **comorbidity**, **progression**, **body_part**
   - **Use these exact labels; do not introduce new labels or synonyms.**

2. **Relationship Extraction**:
   - Extract relationships among these entities based on the relations **only**:
     - **cause**, **treat**, **present**, **diagnose**, **aggravate**, **prevent**, **improve**, **affect**
   - **Use these exact labels; do not introduce new labels or synonyms.**

**Output Format**:

Present each relationship in the following exact format (including single quotes and braces):

{'relation_type': 'relation_type_value', 'entity1_type': 'entity1_type_value', 'entity1_name': 'entity1_name_value', 'entity2_type': 'entity2_type_value', 'entity2_name': 'entity2_name_value'}

**Example**:

Text: "AMD affects the retina and causes vision loss."

Output:
{'relation_type': 'affect', 'entity1_type': 'disease', 'entity1_name': 'AMD', 'entity2_type': 'body_part', 'entity2_name': 'retina'}
{'relation_type': 'cause', 'entity1_type': 'disease', 'entity1_name': 'AMD', 'entity2_type': 'symptom', 'entity2_name': 'vision loss'}

**Instructions**:

- Replace placeholders with appropriate values from the text.
- **Ensure 'entity1_type' and 'entity2_type' are **only** from the specified labels.**
- **Do not use any other terms for entity or relation types.**
- Output **only** the relationships in the specified format.
- **Do not include any additional text, explanations, or numbers.**
- Exclude parentheses and special characters in 'entity1_name' and 'entity2_name'.
- For enumerations, split them into separate relationships (e.g., "AMD affects the eye and the retina" becomes two relationships: one with 'eye' and one with 'retina').`

func userPrompt(text string) string {
	return "Extract all relationships from the following text and present them in the specified format:\n\n" + text
}
