package prompts

import (
	"fmt"
	"strings"

	"historia/internal/model/storyboard"
)

// SystemPrompt 全局系统提示词，所有文本生成调用共用
const SystemPrompt = `You are Historia, an AI-powered historical storytelling engine. You specialize in transforming historical events into compelling, accurate, and cinematic narratives suitable for educational YouTube content.`

// ResearchSystemPrompt 原始检索阶段的系统提示词
const ResearchSystemPrompt = `You are a historical research specialist. Provide factually accurate, detailed historical information with specific dates, names, and sources.`

// TTSSystemPrompt 语音稿格式化阶段的系统提示词
const TTSSystemPrompt = `You are an expert voiceover script formatter. You preserve every word exactly but improve line breaks and paragraph structure for natural speech delivery.`

// contentTypeResearch 各内容类型的研究侧重点
var contentTypeResearch = map[storyboard.ContentType]string{
	storyboard.ContentTypeBiography: `Provide detailed biographical information including:
- Complete chronological timeline with specific dates
- Major life events and turning points
- Relationships, allies, and enemies
- Quotes and anecdotes (with sources)
- Political/cultural context of their era
- Legacy and historical impact`,
	storyboard.ContentTypeBattle: `Provide comprehensive battle information including:
- Political and strategic context leading to the battle
- Specific date and location
- Commanders and their backgrounds
- Troop numbers, formations, and composition
- Chronological timeline of battle phases
- Tactical innovations and decisive moments
- Casualties, aftermath, and long-term significance`,
	storyboard.ContentTypeCulture: `Provide cultural details including:
- Daily life and social structures
- Architecture and urban planning
- Technology and innovations
- Religious practices and beliefs
- Food, clothing, and material culture
- Economic systems and trade
- Primary sources and archaeological evidence`,
	storyboard.ContentTypeMythology: `Provide mythological information including:
- Primary source texts (authors and works)
- Core narrative arc and plot points
- Character descriptions and relationships
- Symbolic meanings and cultural context
- Variations in different tellings
- Historical practices connected to the myth`,
}

// BuildResearchQuery 构建原始检索阶段的查询
func BuildResearchQuery(title string, era storyboard.HistoricalEra, contentType storyboard.ContentType) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Research the historical topic: %q (%s era)\n\n", title, era)
	b.WriteString(contentTypeResearch[contentType])
	b.WriteString(`

IMPORTANT REQUIREMENTS:
- Prioritize factual accuracy over dramatic storytelling
- Include specific dates (year, month, day if known)
- Cite primary sources (ancient texts) and scholarly works
- Provide rich sensory details (what people saw, heard, felt)
- Include architectural, clothing, and equipment details
- Note where historians disagree or evidence is uncertain
- Distinguish clearly between fact and legend`)

	return b.String()
}

// contentTypeRequirements 结构化研究提示词里各内容类型的要求段落
var contentTypeRequirements = map[storyboard.ContentType]string{
	storyboard.ContentTypeBiography: `**For Biographical Content:**
1. Chronicle the subject's life in chronological order with specific dates
2. Identify 3-5 key turning points that shaped their legacy
3. Gather quotes, anecdotes, and personality traits
4. Research their relationships, allies, and enemies
5. Document the political and cultural context of their era`,
	storyboard.ContentTypeBattle: `**For Battle Narratives:**
1. Establish the political/strategic context that led to the conflict
2. Document troop numbers, commanders, and military formations
3. Create a chronological timeline of the battle phases
4. Identify the decisive moments and tactical innovations
5. Research the aftermath and historical significance`,
	storyboard.ContentTypeCulture: `**For Cultural Deep-Dives:**
1. Document daily life, social hierarchies, and customs
2. Research technological innovations and architectural achievements
3. Explore religious beliefs, festivals, and rituals
4. Gather information about food, clothing, and material culture
5. Understand the economic systems and trade networks`,
	storyboard.ContentTypeMythology: `**For Mythological Retellings:**
1. Identify the primary source texts (Virgil, Ovid, Geoffrey of Monmouth, etc.)
2. Extract the core narrative arc and key plot points
3. Research the cultural context and symbolic meanings
4. Note variations in different tellings
5. Connect myth to historical practices or beliefs`,
}

// HistoricalResearch 构建结构化研究提示词
// rawFindings 为空时只下发结构化要求
func HistoricalResearch(title string, era storyboard.HistoricalEra, contentType storyboard.ContentType, rawFindings string) string {
	var b strings.Builder

	b.WriteString(`### ROLE

You are the **Historical Research Specialist**, the first critical stage in the Historia storytelling engine. Your expertise spans Roman, Medieval, Napoleonic, and Prussian history.

### OBJECTIVE

Conduct comprehensive historical research on the given topic to gather factually accurate information suitable for creating a compelling narrative. Focus on chronological events, key figures, sensory details, and dramatic arcs.

### INPUTS

`)
	fmt.Fprintf(&b, "- **TOPIC:** %s\n- **ERA:** %s\n- **CONTENT TYPE:** %s\n\n", title, era, contentType)
	b.WriteString("### RESEARCH REQUIREMENTS\n\n")
	b.WriteString(contentTypeRequirements[contentType])
	b.WriteString(`

### SENSORY DETAIL REQUIREMENTS

Provide rich, historically accurate sensory details:
- **Setting:** Describe the physical environment (terrain, buildings, landscapes)
- **Weather:** Note seasonal conditions, climate typical of the region
- **Sounds:** Battle cries, crowd noise, construction sounds, nature
- **Visuals:** Colors, lighting, architectural details, clothing materials
- **Textures:** Stone, marble, bronze, leather, wool, silk

### OUTPUT FORMAT

Respond with a JSON object (and ONLY valid JSON, no markdown code blocks):

`)
	fmt.Fprintf(&b, `{
  "topic": %q,
  "era": %q,
  "timeline": [
    {"date": "49 BC, January 10", "event": "Caesar crosses the Rubicon", "significance": "Point of no return; civil war begins"}
  ],
  "key_figures": [
    {"name": "Julius Caesar", "role": "Roman General and Dictator", "description": "Ambitious military commander seeking power", "notable_actions": ["Conquered Gaul", "Crossed Rubicon", "Defeated Pompey"]}
  ],
  "sensory_details": {
    "setting": "The Rubicon River, northern Italy, a shallow stream marking the boundary of Rome's sacred territory",
    "weather": "Cold winter morning, mist rising from the water",
    "sounds": "Marching legions, clinking armor, rushing water, war horns",
    "visuals": "Red cloaks of centurions, gleaming bronze helmets, eagle standards, muddy riverbanks",
    "textures": "Cold iron of swords, wet leather sandals, rough wool cloaks"
  },
  "primary_sources": ["Plutarch's Life of Caesar", "Suetonius' Twelve Caesars"],
  "dramatic_arcs": ["Rising ambition clashes with Republican tradition", "The gamble that changes history"],
  "cultural_context": "Roman Republic in crisis, Senate vs. military strongmen",
  "raw_research_data": "Additional context, scholarly debates, archaeological evidence..."
}`, title, era)
	b.WriteString(`

### CONSTRAINTS

- Prioritize ACCURACY over drama. Do not invent facts.
- Use specific dates whenever possible (year, month, day if known)
- Cite primary sources (ancient texts) and major scholarly works
- If dealing with myth, clearly distinguish myth from historical fact
- Include dramatic arcs that are SUPPORTED by historical evidence
- Provide enough visual detail for artists to recreate scenes`)

	if rawFindings != "" {
		b.WriteString("\n\nPrevious research findings to incorporate:\n")
		b.WriteString(rawFindings)
	}

	return b.String()
}

// toneGuidelines 各叙事基调的写作指引
var toneGuidelines = map[storyboard.NarrativeTone]string{
	storyboard.ToneEpic: `**EPIC TONE:**
- Emphasize heroism, larger-than-life characters, grand scale
- Use dramatic language: "The fate of empires hung in the balance"
- Focus on pivotal moments that shaped civilizations
- Celebrate courage, sacrifice, and ambition`,
	storyboard.ToneDocumentary: `**DOCUMENTARY TONE:**
- Emphasize facts, analysis, and historical significance
- Use measured language: "Historians debate the true motivations"
- Include multiple perspectives and scholarly interpretation
- Focus on cause-and-effect, political complexity`,
	storyboard.ToneTragic: `**TRAGIC TONE:**
- Emphasize hubris, downfall, and the cost of ambition
- Use melancholic language: "His triumph contained the seeds of his destruction"
- Focus on fatal flaws, betrayals, and irreversible choices
- Highlight the human cost and moral complexity`,
	storyboard.ToneEducational: `**EDUCATIONAL TONE:**
- Emphasize learning, context, and broader lessons
- Use clear language: "This event illustrates the principle of..."
- Include historical parallels and modern relevance
- Focus on systems, institutions, and long-term trends`,
}

// NarrativeOutline 构建三幕结构大纲提示词
func NarrativeOutline(title, research string, tone storyboard.NarrativeTone) string {
	var b strings.Builder

	b.WriteString(`### ROLE

You are the **Narrative Architect**, responsible for transforming historical research into a compelling three-act dramatic structure suitable for YouTube storytelling.

### OBJECTIVE

Using the historical research provided, craft a narrative outline that organizes the facts into a dramatic arc. Your structure should create tension, build to a climax, and deliver emotional satisfaction while remaining historically accurate.

### INPUTS

`)
	fmt.Fprintf(&b, "- **TOPIC:** %s\n- **TONE:** %s\n- **RESEARCH DATA:**\n%s\n\n", title, tone, research)
	b.WriteString(`### NARRATIVE STRUCTURE REQUIREMENTS

**Three-Act Structure:**

**ACT 1 - SETUP (25% of narrative)**
- Establish the world, time period, and historical context
- Introduce main characters/factions with their goals and motivations
- Present the inciting incident or catalyst
- Raise the central dramatic question

**ACT 2 - CONFLICT (50% of narrative)**
- Escalate tensions through complications and obstacles
- Show characters making consequential decisions
- Include setbacks, betrayals, strategic maneuvers
- Build to the point of maximum tension/crisis

**ACT 3 - RESOLUTION (25% of narrative)**
- Deliver the climactic moment (battle, assassination, coronation, etc.)
- Show immediate consequences
- Reveal the historical legacy and long-term impact
- Answer the dramatic question posed in Act 1

### TONE GUIDELINES

`)
	b.WriteString(toneGuidelines[tone])
	b.WriteString(`

### OUTPUT FORMAT

Respond with a JSON object (and ONLY valid JSON, no markdown code blocks):

{
  "act1_setup": {
    "act_name": "Setup",
    "scenes": ["Establish Rome in 49 BC - Senate vs. Caesar tension"],
    "goal": "Establish the political crisis and Caesar's impossible choice",
    "emotional_arc": "Building tension and dread",
    "key_moments": ["Senate ultimatum delivered"]
  },
  "act2_conflict": {
    "act_name": "Conflict",
    "scenes": ["Caesar's night of decision at the Rubicon", "The crossing - the die is cast"],
    "goal": "Show the cascading consequences of Caesar's gamble",
    "emotional_arc": "From uncertainty to unstoppable momentum",
    "key_moments": ["The crossing itself"]
  },
  "act3_resolution": {
    "act_name": "Resolution",
    "scenes": ["The Ides of March", "Legacy: the death of the Republic"],
    "goal": "Show the ultimate price of Caesar's ambition",
    "emotional_arc": "From triumph to tragedy",
    "key_moments": ["'Et tu, Brute?'"]
  },
  "narrative_theme": "The fatal cost of ambition and the fragility of republican institutions",
  "dramatic_question": "Can Caesar save Rome by breaking its most sacred laws?"
}

### CONSTRAINTS

- Every scene must be grounded in historical fact
- Maintain chronological order unless flashbacks serve dramatic purpose
- Balance spectacle with character moments
- Ensure the climax is the MOST dramatic historical event
- The resolution must connect to historical legacy (what changed forever?)`)

	return b.String()
}

// FinalScript 构建完整解说词生成提示词
// targetDuration 单位为分钟，目标词数按 150 词/分钟换算
func FinalScript(title, research, outline string, tone storyboard.NarrativeTone, era storyboard.HistoricalEra, targetDuration int) string {
	targetWords := targetDuration * 150

	var b strings.Builder
	b.WriteString(`### ROLE

You are a **Master Historical Storyteller**, writing narration for a premium YouTube history channel in the style of Epic History TV, Kings and Generals, or Fall of Civilizations.

### OBJECTIVE

Write a compelling, historically accurate narration script that brings the past to life. Your script will be read by a professional voice actor and accompanied by dramatic visuals. Every sentence should be cinematic, immersive, and factually grounded.

### INPUTS

`)
	fmt.Fprintf(&b, "- **TOPIC:** %s\n- **ERA:** %s\n- **TONE:** %s\n\n**RESEARCH FINDINGS:**\n%s\n\n**NARRATIVE STRUCTURE:**\n%s\n\n", title, era, tone, research, outline)
	b.WriteString(`### SCRIPT REQUIREMENTS

**Style Guidelines:**
1. **Present-Tense Immersion:** Write as if the viewer is witnessing events unfold
2. **Cinematic Language:** Use vivid, sensory descriptions
3. **Historical Specificity:** Use exact numbers, dates, and names
4. **Dramatic Tension:** Build suspense even when the outcome is known
5. **Authority & Credibility:** Reference sources when appropriate ("According to Plutarch...")

**Narration Structure:**
- **Opening Hook (60 seconds):** Grab attention with the most dramatic moment or big question
- **Act 1:** Set the stage, introduce characters, establish stakes
- **Act 2:** Build tension, show conflict escalating
- **Act 3:** Deliver climax and resolution
- **Closing (60 seconds):** Reflect on legacy and historical significance

**Tone Execution:**
`)
	b.WriteString(toneGuidelines[tone])
	fmt.Fprintf(&b, `

**Technical Specifications:**
- **Target Length:** %d words (%d minutes of narration)
- **Reading Level:** Accessible to general audience, sophisticated in content
- **Pacing:** Vary sentence length (short for drama, longer for context)
- **No Formatting:** No bold, italics, bullets, or headers - pure flowing prose
- **TTS-Optimized:** Avoid complex punctuation that confuses text-to-speech

### HISTORICAL ACCURACY REQUIREMENTS

- **No Fabrication:** Do not invent dialogue, thoughts, or events not supported by sources
- **Source Attribution:** When using quotes, name the source
- **Uncertainty Acknowledgment:** If historians disagree, note it briefly
- **Cultural Sensitivity:** Avoid anachronistic moral judgments or modern political terminology

### OUTPUT FORMAT

Return ONLY the script text - no title, no metadata, no JSON. Pure narrative prose, ready for a voice actor.

### CONSTRAINTS

- Write %d words total (target duration: %d minutes)
- Maintain consistent tone throughout
- Every fact must trace back to provided research
- Build to the climactic moment identified in the outline
- End with lasting legacy/impact`, targetWords, targetDuration, targetWords, targetDuration)

	return b.String()
}

// SceneBreakdown 构建场景视觉拆解提示词
func SceneBreakdown(script string, targetSceneCount int) string {
	var b strings.Builder

	b.WriteString(`### ROLE

You are a **Visual Director** for historical documentary content, specialized in translating narration into stunning visual scene descriptions.

### OBJECTIVE

`)
	fmt.Fprintf(&b, "Analyze the provided script and break it into approximately %d distinct visual scenes. Each scene should have a clear visual concept that can be rendered as a dramatic, painterly image in the style of classical historical art.\n\n**TARGET SCENE COUNT:** %d scenes (based on script duration and ~7-8 seconds per scene)\n\n### INPUT SCRIPT\n\n%s\n\n", targetSceneCount, targetSceneCount, script)
	b.WriteString(`### SCENE REQUIREMENTS

**Selection Criteria:**
- Choose the most visually dramatic moments from the script
- Aim for variety: mix wide shots (battles, crowds) with intimate moments (conversations, decisions)
- Ensure chronological flow matching the script
- Include key moments: opening hook, turning points, climax, resolution

**Visual Prompt Guidelines:**
Each scene description must be detailed enough for an AI image generator to create a historically accurate, cinematic image. Include:

1. **Subject & Action:** Who/what is the focus? What's happening?
2. **Composition:** Camera angle, framing, perspective
3. **Historical Details:** Accurate clothing, armor, architecture, objects
4. **Lighting & Mood:** Time of day, weather, atmosphere
5. **Artistic Style:** "Oil painting by Jacques-Louis David" or "Neoclassical historical painting" or "Romantic era battle scene"

**Historical Accuracy:**
- Specify correct armor/weapons for the era (lorica segmentata for Imperial Rome, chainmail for Medieval, etc.)
- Name architectural styles (Doric columns, Gothic arches, etc.)
- Use era-appropriate colors and materials

**Content Sensitivity Guidelines (CRITICAL):**
- AVOID graphic depictions of violence: no close-ups of wounds, injuries, blood, or gore
- For battle scenes: focus on formations, banners, cavalry charges, soldiers in combat stance - NOT graphic wounds or suffering
- For medical/illness topics: use symbolic imagery (physicians, herbs, hospitals) - NEVER show symptoms, disfigurement, or suffering
- NO torture scenes, executions with visible gore, or graphic death depictions
- Keep battle imagery heroic and distant rather than graphic and close-up

### OUTPUT FORMAT

Return a JSON array of scenes (ONLY valid JSON, no markdown code blocks):

[
  {
    "scene_number": 1,
    "script_snippet": "January 10th, 49 BC. The Rubicon River, northern Italy...",
    "visual_prompt": "Cinematic oil painting in the style of Jacques-Louis David. Julius Caesar on horseback at the edge of the Rubicon River at dawn. Dramatic chiaroscuro lighting, heroic composition, 8k detail, historically accurate, cinematic atmosphere.",
    "historical_context": "Caesar's decision to cross the Rubicon with his legion was illegal and precipitated the Roman Civil War"
  }
]

### CONSTRAINTS

`)
	fmt.Fprintf(&b, `- Generate approximately %d scenes to match the script duration
- Each visual_prompt must be 50-100 words (detailed enough for quality image generation)
- Script_snippet should be the actual text from the script this scene illustrates
- Historical_context is optional but valuable for understanding
- Space scenes evenly throughout the script to maintain consistent pacing
- Maintain chronological order matching the script`, targetSceneCount)

	return b.String()
}

// AnalyzeScriptQuality 构建脚本质量分析提示词
func AnalyzeScriptQuality(script string) string {
	var b strings.Builder

	b.WriteString(`### ROLE

You are a **Script Quality Analyst** for a premium YouTube history channel, with expertise in historical accuracy, audience retention, and narrative craft.

### OBJECTIVE

Evaluate the provided narration script across three dimensions and suggest concrete improvements. Be specific and actionable; vague praise is useless.

### INPUT SCRIPT

`)
	b.WriteString(script)
	b.WriteString(`

### EVALUATION DIMENSIONS

1. **Historical Accuracy (0-100):** Are dates, names, numbers, and events correct? Are claims supported by known sources? Flag any invented dialogue or anachronisms.
2. **Hook Strength (0-100):** Does the opening 60 seconds grab attention? Is there a dramatic question that pulls the viewer forward?
3. **Retention Tactics (0-100):** Are there open loops, pattern interrupts, and pacing changes that keep viewers watching? Does tension build toward the climax?

### PHILOSOPHER INSIGHTS

Identify 2-4 moments where the script could connect events to timeless ideas (Stoicism, the corruption of power, the fragility of institutions). For each, name the thinker or school, the idea, and why it is relevant here.

### OUTPUT FORMAT

Respond with a JSON object (and ONLY valid JSON, no markdown code blocks):

{
  "accuracy": {"score": 82, "feedback": "Dates and troop numbers match the sources, but the quoted dialogue in the opening is not attested."},
  "hook_strength": {"score": 64, "feedback": "The opening states facts instead of posing the dramatic question."},
  "retention_tactics": {"score": 71, "feedback": "Good pacing in Act 2, but Act 3 resolves too quickly."},
  "philosopher_insights": [
    {"philosopher": "Polybius", "insight": "Anacyclosis - the cycle of constitutions", "relevance": "The Senate's flight from Rome illustrates the decay of mixed government"}
  ],
  "suggestions": [
    "Open with the moment of decision at the Rubicon, then flash back",
    "Replace the unattested quote with Plutarch's account"
  ]
}

### CONSTRAINTS

- Scores are integers from 0 to 100
- Every piece of feedback must point at a specific passage or omission
- Suggestions must be implementable without new research`)

	return b.String()
}

// RewriteScript 构建基于分析结果的脚本重写提示词
func RewriteScript(script string, analysis *storyboard.ScriptAnalysis) string {
	var b strings.Builder

	b.WriteString(`### ROLE

You are a **Master Script Editor** for a premium YouTube history channel. You rewrite narration scripts to fix identified weaknesses while preserving historical accuracy and the author's voice.

### OBJECTIVE

Rewrite the script below, applying the analysis feedback. Keep everything that works; fix what the analysis flags. The result must remain pure narration prose ready for a voice actor.

### INPUT SCRIPT

`)
	b.WriteString(script)
	b.WriteString("\n\n### ANALYSIS FEEDBACK\n\n")
	fmt.Fprintf(&b, "**Historical Accuracy (%d/100):** %s\n", analysis.Accuracy.Score, analysis.Accuracy.Feedback)
	fmt.Fprintf(&b, "**Hook Strength (%d/100):** %s\n", analysis.HookStrength.Score, analysis.HookStrength.Feedback)
	fmt.Fprintf(&b, "**Retention Tactics (%d/100):** %s\n", analysis.RetentionTactics.Score, analysis.RetentionTactics.Feedback)

	if len(analysis.PhilosopherInsights) > 0 {
		b.WriteString("\n**Philosophical Depth to Weave In:**\n")
		for _, insight := range analysis.PhilosopherInsights {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", insight.Philosopher, insight.Insight, insight.Relevance)
		}
	}

	if len(analysis.Suggestions) > 0 {
		b.WriteString("\n**Specific Improvements:**\n")
		for _, suggestion := range analysis.Suggestions {
			fmt.Fprintf(&b, "- %s\n", suggestion)
		}
	}

	b.WriteString(`
### CONSTRAINTS

- Preserve all historically accurate facts, dates, and numbers
- Keep roughly the same total length (within 10%)
- Maintain the original tone and present-tense immersion
- No formatting: no bold, italics, bullets, or headers
- Return ONLY the rewritten script text, nothing else`)

	return b.String()
}

// FormatForTTS 构建语音稿格式化提示词
// 核心约束是逐词保留，只允许调整断行与分段
func FormatForTTS(script string) string {
	var b strings.Builder

	b.WriteString(`### OBJECTIVE

Reformat the narration script below for text-to-speech delivery. Your ONLY job is structure: line breaks and paragraph breaks that match natural speech rhythm and breathing points.

### ABSOLUTE RULES

- PRESERVE EVERY WORD EXACTLY. Do not add, remove, or change a single word.
- Do not fix typos, grammar, or punctuation within sentences.
- Do not add any commentary, headers, or metadata.
- Only insert or adjust line breaks and blank lines between paragraphs.
- Short paragraphs (2-4 sentences) separated by blank lines work best for TTS pacing.

### INPUT SCRIPT

`)
	b.WriteString(script)
	b.WriteString("\n\nReturn ONLY the reformatted script.")

	return b.String()
}

// OilPaintingStyleSuffix 追加到每个视觉 prompt 末尾的风格约束
const OilPaintingStyleSuffix = `

STYLE REQUIREMENTS (CRITICAL):
- Masterpiece oil painting in classical historical art style
- Dramatic chiaroscuro lighting, deep shadows, rich highlights
- Highly detailed textures: brushwork visible, oil paint technique
- Cinematic composition with strong focal point
- Historically accurate costume, architecture, and props
- 8k resolution, museum quality
- Realistic faces and anatomy, detailed expressions
- Atmospheric perspective, rich color palette

NEGATIVE PROMPTS (AVOID):
- NO cartoon, anime, vector art, or minimalist styles
- NO modern clothing, anachronistic elements, or smartphones
- NO blur, distortion, or low quality
- NO text, watermarks, or logos
- NO abstract or surrealist elements`

// NegativePromptHistorical 图片生成的负面提示词
const NegativePromptHistorical = "cartoon, anime, manga, sketch, vector art, minimalist, flat design, modern clothing, contemporary setting, smartphones, blur, distorted faces, low quality, text, watermark, logo, abstract, surrealist, anachronistic, digital art style, 3D render, gore, blood, open wounds, graphic violence, injuries, disfigurement, illness, disease symptoms, suffering, graphic medical procedures, dismemberment, mutilation, decapitation, severed limbs, visible internal organs, graphic bodily harm, torture scenes, close-up wounds, bleeding, graphic death scenes"

// BuildImagePrompt 构建最终下发给图片生成服务的完整 prompt
func BuildImagePrompt(visualPrompt string) string {
	return visualPrompt + OilPaintingStyleSuffix
}
