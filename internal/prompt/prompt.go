// Package prompt builds the instruction text sent to the generation service.
// Every builder is a pure string-formatting function; none of them perform I/O.
package prompt

import (
	"fmt"
	"strings"
)

// eventSchema describes the exact JSON array the extraction stage must emit.
// The Thai keys are the wire contract; model.DisasterEvent mirrors them.
const eventSchema = `[
  {
    "เวลา": "(เดือน/ปี หรือปีเท่านั้น, เช่น YYYY-MM หรือ YYYY)",
    "มูลค่าความเสียหาย(บาท)": (float หรือ number),
    "ผู้เสียชีวิต(คน)": (integer),
    "ผู้บาดเจ็บ(คน)": (integer),
    "แหล่งที่มา": "(ระบุชื่อสำนักข่าว/เว็บไซต์ และ URL ลิงก์อ้างอิง)",
    "รายละเอียดของเหตุการณ์": "(ข้อความสรุปเหตุการณ์ 100-300 คำ อธิบายสาเหตุ พื้นที่ และผลกระทบ เป็นภาษาไทย)"
  }
]`

// Translation wraps source-locale text with an instruction to translate it to
// English. Downstream prompts and web search quality are tuned for English.
func Translation(text string) string {
	return fmt.Sprintf("Translate the following Thai text to English. "+
		"Respond with the translation only, no explanation: '%s'", text)
}

// Research asks for one long free-text document covering between min and max
// historical occurrences, with enough detail for later structured extraction.
func Research(eventType, location string, min, max int) string {
	return fmt.Sprintf(
		"Search for historical statistics related to the disaster event type '%s' "+
			"that occurred in the region '%s'. "+
			"Focus on reports detailing the date/time, damage costs, number of fatalities, "+
			"injuries, clear news sources (website names/agency names) and their corresponding URLs, "+
			"and brief event summaries. "+
			"Summarize all findings into a single, long text document containing sufficient detail "+
			"for subsequent statistical data extraction. "+
			"Target between %d and %d separate historical events.",
		eventType, location, min, max)
}

// ExtractionSystem is the strict-contract system instruction for the second
// stage: coerce the research text into the exact JSON array schema.
func ExtractionSystem(eventType, location string, min, max int) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		"You are an expert in historical data analysis and estimation. "+
			"Your task is to analyze the raw text provided, which summarizes disaster "+
			"statistics for the event type '%s' in '%s', and extract the statistical "+
			"data into a 100%% correct JSON Array format.\n"+
			"Strict Rules:\n", eventType, location)

	fmt.Fprintf(&b, "1. The JSON Array must strictly adhere to this structure (with Thai keys):\n%s\n", eventSchema)

	b.WriteString(
		"2. IF DATA IS MISSING (damage amount or injuries): you MUST predict/estimate the value " +
			"based on the other available data (fatalities, event scale, similar past events). " +
			"The predicted value can be 0 only if the context strongly suggests minimal impact, " +
			"and the reason must be stated explicitly.\n" +
			"3. IF PREDICTION/ESTIMATION IS USED (including 0): the 'แหล่งที่มา' field MUST keep the " +
			"original source information, then append a semicolon (;) followed by this note in Thai: " +
			"'พยากรณ์ข้อมูลประเภท [ชื่อฟิลด์ที่พยากรณ์] โดยอ้างอิงข้อมูลจาก [แหล่งข้อมูลหรือวิธีที่ใช้ในการพยากรณ์]'. " +
			"If 0 is chosen, state the reason clearly.\n" +
			"4. The 'แหล่งที่มา' field MUST include the source name (e.g., BBC, NOAA) AND the specific " +
			"URL for the article, separated by a colon ('Source Name: URL'). If multiple sources are " +
			"used, separate them with a comma.\n" +
			"5. The 'รายละเอียดของเหตุการณ์' field MUST BE WRITTEN IN THAI (100-300 words) based on the " +
			"English source text.\n")

	fmt.Fprintf(&b, "6. HAVE AT LEAST %d EVENTS but NO MORE THAN %d EVENTS.\n", min, max)
	b.WriteString("7. NO TEXT is allowed before or after the JSON Array.")

	return b.String()
}

// ExtractionUser wraps the research output as the user-channel content for the
// extraction stage.
func ExtractionUser(rawSummary string) string {
	return "Raw text to analyze:\n\n" + rawSummary
}

// GeoExtraction requests tabular CSV output with an exact header row and no
// surrounding commentary. Coordinates are explicitly estimates.
func GeoExtraction(headers []string, narrative string) string {
	return fmt.Sprintf(
		"Extract every distinct geospatial event from the narrative below into CSV.\n"+
			"The first line of your output must be exactly this header row:\n%s\n"+
			"One line per event. LATITUDE_EST and LONGITUDE_EST are your best decimal-degree "+
			"estimates for the named location when coordinates are not explicit in the text. "+
			"Quote any field containing a comma. "+
			"Respond with ONLY the CSV, no markdown, no explanation, no text before or after it.\n\n"+
			"--- NARRATIVE ---\n%s",
		strings.Join(headers, ","), narrative)
}
