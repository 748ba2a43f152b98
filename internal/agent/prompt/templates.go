package prompt

// InterpretPrompt asks the model to turn a free-text book request into the
// flat criteria object. The tier rules are repeated here even though the
// filter compiler derives the same thresholds from quality and priceRange.
//
// Args: the sanitised request text
const InterpretPrompt = `Analyze the following book recommendation request and extract structured information.
Return a JSON object with the following fields if present:
- genre: The book genre mentioned
- author: The author name mentioned
- minRating: Minimum rating if specified (scale 0-5)
- maxRating: Maximum rating if specified (scale 0-5)
- minReviews: Minimum number of reviews if specified (range 0-100000)
- maxReviews: Maximum number of reviews if specified (range 0-100000)
- minPrice: Minimum price if specified
- maxPrice: Maximum price if specified
- priceRange: Set to 'budget' for cheap/affordable, 'moderate' for mid-range, 'premium' for expensive/high-end
- quality: Set to 'high' if words like 'good', 'best', 'great', 'excellent' are mentioned
- searchTerm: Any other relevant search terms

For quality levels:
- 'high': minRating should be 4.0 or higher, minReviews should be 1000 or more
- 'medium': minRating should be 3.5 or higher, minReviews should be 500 or more
- 'low': no specific rating or review requirements

For price ranges:
- 'budget': maxPrice should be 15 or less
- 'moderate': maxPrice should be between 15 and 30
- 'premium': minPrice should be 30 or more

Omit any field that is not present in the request.

Request: "%s"

Return only the JSON object, nothing else.`
