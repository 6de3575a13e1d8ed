package main

const exampleCampaign = `{
  "name": "Summer Launch",
  "headline": "Big Summer Sale\nThis Week Only",
  "subheadline": "Up to 50% off everything in store",
  "description": "Seasonal clearance campaign",
  "hashtags": ["#sale", "#summer"],
  "images": [
    {
      "id": "hero",
      "src": "https://example.com/backgrounds/beach.jpg"
    }
  ]
}
`

const exampleSettings = `{
  "headline": {
    "verticalPosition": "top",
    "rows": [
      {
        "fontSize": 40,
        "fontColor": "#ffffff",
        "useGradient": true,
        "gradientColors": ["#f59e0b", "#ef4444"],
        "gradientAngle": 45
      }
    ]
  },
  "subheadline": {
    "verticalPosition": "bottom",
    "fontSize": 20
  },
  "addLogo": true,
  "logoPosition": "top-right",
  "ctaButton": {
    "enabled": true,
    "text": "Shop Now",
    "verticalPosition": "bottom",
    "horizontalAlign": "center"
  }
}
`
